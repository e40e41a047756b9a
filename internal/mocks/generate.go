package mocks

//go:generate mockery --name ObservationStore --srcpkg github.com/aevon-lab/devicescout/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name RecommendationStore --srcpkg github.com/aevon-lab/devicescout/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name KnownDeviceStore --srcpkg github.com/aevon-lab/devicescout/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ModelStore --srcpkg github.com/aevon-lab/devicescout/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name "Processor|Registrar|Recommender|StructureResolver" --srcpkg github.com/aevon-lab/devicescout/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter

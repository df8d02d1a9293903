package mocks

//go:generate mockery --name EventRepository --srcpkg github.com/aevon-lab/hybrid-events/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Sequencer --srcpkg github.com/aevon-lab/hybrid-events/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Publisher --srcpkg github.com/aevon-lab/hybrid-events/internal/bus --output ./bus --outpkg busmocks --with-expecter

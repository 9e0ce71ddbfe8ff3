package mocks

//go:generate mockery --name Sink --srcpkg github.com/aevon-lab/thermod/internal/aggregation --output ./aggregation --outpkg aggregationmocks --with-expecter
//go:generate mockery --name Store --srcpkg github.com/aevon-lab/thermod/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

package mocks

//go:generate mockery --name RecordSource --srcpkg github.com/perfcube-lab/perfcube/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name RecordStore --srcpkg github.com/perfcube-lab/perfcube/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ReferenceSource --srcpkg github.com/perfcube-lab/perfcube/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ReferenceWriter --srcpkg github.com/perfcube-lab/perfcube/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

package mocks

//go:generate mockery --name EventStore --srcpkg github.com/gridwatch-lab/outage-events/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

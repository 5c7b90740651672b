package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/subscription --output domain/subscription --outpkg subscriptionmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/team --output domain/team --outpkg teammock --filename source_mock.go

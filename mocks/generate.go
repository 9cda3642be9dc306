package mocks

//go:generate mockgen -destination api_client.go -package mocks -mock_names Client=MockAPIClient github.com/cocov-ci/actions/api Client
//go:generate mockgen -destination storage_provider.go -package mocks github.com/cocov-ci/actions/storage Provider

//go:generate mockgen -source=../cart_repository.go   -destination=./mock_cart_repository.go   -package=mocks
//go:generate mockgen -source=../catalog.go           -destination=./mock_catalog.go           -package=mocks
//go:generate mockgen -source=../product_cache.go     -destination=./mock_product_cache.go     -package=mocks
//go:generate mockgen -source=../inventory_view.go    -destination=./mock_inventory_view.go    -package=mocks
//go:generate mockgen -source=../line_validator.go    -destination=./mock_line_validator.go    -package=mocks
//go:generate mockgen -source=../product_validator.go -destination=./mock_product_validator.go -package=mocks
//go:generate mockgen -source=../cart_service.go      -destination=./mock_cart_service.go      -package=mocks

package mocks

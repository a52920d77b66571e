//go:build gomock || generate

package sd

//go:generate sh -c "go run go.uber.org/mock/mockgen -package sd -self_package github.com/sdchallenge/sdgen/sd -destination mock_bit_source_test.go github.com/sdchallenge/sdgen/sd BitSource"

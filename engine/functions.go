package engine

import (
	"database/sql/driver"
	"fmt"
	"math"
	"sync"

	"github.com/viant/ctxsim/vector"
	sqlite "modernc.org/sqlite"
)

var registerOnce sync.Once

// RegisterVectorFunctions registers vec_cosine, vec_l2 and vec_dim with the
// driver so they are available on connections opened after this call.
// Arguments are BLOBs produced by vector.EncodeEmbedding; NULL in, NULL out.
func RegisterVectorFunctions() {
	registerOnce.Do(func() {
		_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
		_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl)
		_ = sqlite.RegisterDeterministicScalarFunction("vec_dim", 1, vecDimImpl)
	})
}

func asEmbedding(arg driver.Value) ([]float64, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func pair(name string, args []driver.Value) (a, b []float64, err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	if a, err = asEmbedding(args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = asEmbedding(args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := pair("vec_cosine", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return vector.CosineSimilarity(a, b)
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := pair("vec_l2", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("vec_l2: dimension mismatch %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

func vecDimImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("vec_dim: expected 1 argument, got %d", len(args))
	}
	v, err := asEmbedding(args[0])
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return int64(len(v)), nil
}

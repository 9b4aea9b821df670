package runtime

import (
	"strconv"
	"testing"

	"github.com/wippyai/pyembed/config"
	"github.com/wippyai/pyembed/engine"
)

// BenchmarkResolve benchmarks a full init, argv and teardown cycle
func BenchmarkResolve(b *testing.B) {
	rt, err := New(WithEngine(engine.NewReference()))
	if err != nil {
		b.Fatal(err)
	}
	cfg := &config.Interpreter{Argv: []string{"app", "-m", "service"}}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nc, err := rt.Resolve(cfg)
		if err != nil {
			b.Fatal(err)
		}
		nc.Close()
	}
}

// BenchmarkSetArgv_Replace benchmarks replacing a large argument vector
func BenchmarkSetArgv_Replace(b *testing.B) {
	rt, err := New(WithEngine(engine.NewReference()))
	if err != nil {
		b.Fatal(err)
	}
	args := make([]string, 256)
	for i := range args {
		args[i] = "--arg-" + strconv.Itoa(i)
	}

	bld, err := rt.Initialize()
	if err != nil {
		b.Fatal(err)
	}
	defer bld.Abort()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := bld.SetArgv(args); err != nil {
			b.Fatal(err)
		}
	}
}

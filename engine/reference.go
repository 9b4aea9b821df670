package engine

import (
	"reflect"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/errors"
	"github.com/wippyai/pyembed/resource"
)

// Entry point names, as reported in status values and call counters.
const (
	EntryInitIsolatedConfig = "PyConfig_InitIsolatedConfig"
	EntrySetBytesArgv       = "PyConfig_SetBytesArgv"
	EntryClear              = "PyConfig_Clear"
	entryArgvAsWstrList     = "_PyArgv_AsWstrList"
)

// Reference is a pure-Go engine that reproduces the CPython 3.9 behavior of
// the config entry points. Runtime-owned strings live in an arena that plays
// the role of PyMem_RawMalloc.
type Reference struct {
	arena          *resource.Arena
	dec            decoder
	faults         map[string]abi.Status
	calls          map[string]int
	locale         string
	preinitialized bool
	mu             sync.Mutex
}

// ReferenceOption configures a Reference engine.
type ReferenceOption func(*Reference)

// WithLocale sets the locale used to decode byte arguments, for example
// "C.UTF-8", "POSIX" or "de_DE.ISO-8859-1". Unknown charsets fall back to UTF-8.
func WithLocale(locale string) ReferenceOption {
	return func(r *Reference) {
		r.locale = locale
	}
}

// WithFault makes the named entry point return st instead of running.
func WithFault(entry string, st abi.Status) ReferenceOption {
	return func(r *Reference) {
		r.faults[entry] = st
	}
}

// NewReference creates a Reference engine.
func NewReference(opts ...ReferenceOption) *Reference {
	r := &Reference{
		arena:  resource.NewArena(),
		faults: make(map[string]abi.Status),
		calls:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	dec, err := newDecoder(r.locale)
	if err != nil {
		Logger().Warn("unsupported locale, decoding as UTF-8",
			zap.String("locale", r.locale), zap.Error(err))
		dec = utf8Decoder{}
	}
	r.dec = dec
	return r
}

func (r *Reference) Name() string { return NameReference }

// Calls returns how many times entry was invoked.
func (r *Reference) Calls(entry string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[entry]
}

// Live returns the number of runtime allocations not yet released.
func (r *Reference) Live() int {
	return r.arena.Len()
}

// Owns reports whether p was allocated by this engine and is still live.
func (r *Reference) Owns(p unsafe.Pointer) bool {
	return r.arena.Owns(p)
}

func (r *Reference) enter(entry string) (abi.Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[entry]++
	st, faulted := r.faults[entry]
	return st, faulted
}

// InitIsolatedConfig applies the compat defaults, then the Python defaults,
// then the isolated overrides, in that order.
func (r *Reference) InitIsolatedConfig(cfg *abi.Config) abi.Status {
	if st, faulted := r.enter(EntryInitIsolatedConfig); faulted {
		return st
	}

	*cfg = abi.Config{}
	initCompat(cfg)
	initDefaults(cfg)

	// site_import stays 1: isolation only disables the user site directory.
	cfg.ConfigInit = abi.ConfigInitIsolated
	cfg.Isolated = 1
	cfg.UseEnvironment = 0
	cfg.UserSiteDirectory = 0
	cfg.DevMode = 0
	cfg.InstallSignalHandlers = 0
	cfg.UseHashSeed = 0
	cfg.Faulthandler = 0
	cfg.Tracemalloc = 0
	cfg.PathconfigWarnings = 0

	return abi.StatusOK()
}

func initCompat(cfg *abi.Config) {
	cfg.ConfigInit = abi.ConfigInitCompat
	cfg.Isolated = -1
	cfg.UseEnvironment = -1
	cfg.DevMode = -1
	cfg.InstallSignalHandlers = 1
	cfg.UseHashSeed = -1
	cfg.Faulthandler = -1
	cfg.Tracemalloc = -1
	cfg.UsePegParser = 1
	cfg.ModuleSearchPathsSet = 0
	cfg.ParseArgv = 0
	cfg.SiteImport = -1
	cfg.BytesWarning = -1
	cfg.Inspect = -1
	cfg.Interactive = -1
	cfg.OptimizationLevel = -1
	cfg.ParserDebug = -1
	cfg.WriteBytecode = -1
	cfg.Verbose = -1
	cfg.Quiet = -1
	cfg.UserSiteDirectory = -1
	cfg.ConfigureCStdio = 0
	cfg.BufferedStdio = -1
	cfg.InstallImportlib = 1
	cfg.CheckHashPycsMode = nil
	cfg.PathconfigWarnings = -1
	cfg.InitMain = 1
	cfg.IsolatedInterpreter = 0
}

func initDefaults(cfg *abi.Config) {
	cfg.Isolated = 0
	cfg.UseEnvironment = 1
	cfg.SiteImport = 1
	cfg.BytesWarning = 0
	cfg.Inspect = 0
	cfg.Interactive = 0
	cfg.OptimizationLevel = 0
	cfg.ParserDebug = 0
	cfg.WriteBytecode = 1
	cfg.Verbose = 0
	cfg.Quiet = 0
	cfg.UserSiteDirectory = 1
	cfg.BufferedStdio = 1
	cfg.PathconfigWarnings = 1
}

// SetBytesArgv preinitializes on first use, decodes every argument with the
// locale encoding and replaces cfg.Argv. On failure cfg is left untouched.
func (r *Reference) SetBytesArgv(cfg *abi.Config, argc int, argv **byte) abi.Status {
	if st, faulted := r.enter(EntrySetBytesArgv); faulted {
		return st
	}
	if argc < 0 || (argc > 0 && argv == nil) {
		return abi.StatusErr(EntrySetBytesArgv, "invalid argument vector")
	}

	r.mu.Lock()
	if !r.preinitialized {
		r.preinitialized = true
		Logger().Debug("runtime preinitialized", zap.String("locale", r.locale))
	}
	r.mu.Unlock()

	var args []*byte
	if argc > 0 {
		args = unsafe.Slice(argv, argc)
	}

	items := make([]*abi.WChar, argc)
	for i, p := range args {
		chars, ok := r.dec.decode(abi.GoBytes(p))
		if !ok {
			r.freeWideStrings(items[:i])
			return abi.StatusErr(entryArgvAsWstrList, "cannot decode command line arguments")
		}
		w, err := r.allocWide(chars)
		if err != nil {
			r.freeWideStrings(items[:i])
			return abi.StatusErr(entryArgvAsWstrList, "memory allocation failed")
		}
		items[i] = w
	}

	list := abi.WideStringList{Length: argc}
	if argc > 0 {
		if _, err := r.arena.Keep(unsafe.Pointer(&items[0]), uintptr(argc)*unsafe.Sizeof(items[0]), items); err != nil {
			r.freeWideStrings(items)
			return abi.StatusErr(entryArgvAsWstrList, "memory allocation failed")
		}
		list.Items = &items[0]
	}

	r.clearList(&cfg.Argv)
	cfg.Argv = list
	return abi.StatusOK()
}

func (r *Reference) IsException(st abi.Status) bool {
	return st.IsError() || st.IsExit()
}

// ClearConfig frees every string and list field that this engine allocated.
// Pointers it does not own are left alone and logged.
func (r *Reference) ClearConfig(cfg *abi.Config) {
	r.enter(EntryClear)

	v := reflect.ValueOf(cfg).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch p := f.Addr().Interface().(type) {
		case **abi.WChar:
			r.free(unsafe.Pointer(*p), v.Type().Field(i).Name)
			*p = nil
		case *abi.WideStringList:
			r.clearList(p)
		}
	}
}

func (r *Reference) allocWide(chars []abi.WChar) (*abi.WChar, error) {
	buf := make([]abi.WChar, len(chars)+1)
	copy(buf, chars)
	if _, err := r.arena.Keep(unsafe.Pointer(&buf[0]), uintptr(len(buf))*unsafe.Sizeof(buf[0]), buf); err != nil {
		return nil, err
	}
	return &buf[0], nil
}

func (r *Reference) freeWideStrings(items []*abi.WChar) {
	for _, p := range items {
		r.free(unsafe.Pointer(p), "argv")
	}
}

func (r *Reference) clearList(l *abi.WideStringList) {
	r.freeWideStrings(l.Slice())
	r.free(unsafe.Pointer(l.Items), "list")
	*l = abi.WideStringList{}
}

func (r *Reference) free(p unsafe.Pointer, field string) {
	if p == nil {
		return
	}
	// after Close the arena has already dropped everything
	err := r.arena.Free(p)
	if err == nil || errors.Is(err, resource.ErrClosed) {
		return
	}
	Logger().Warn("free of pointer not owned by runtime",
		zap.String("field", field), zap.Error(err))
}

// Close drops the arena. Allocations still live at that point were never
// released through ClearConfig and are reported as an error.
func (r *Reference) Close() error {
	n, size := r.arena.Len(), r.arena.Bytes()
	if err := r.arena.Close(); err != nil {
		return err
	}
	if n > 0 {
		return errors.New(errors.PhaseRelease, errors.KindInvalidState).
			Value(n).
			Detail("%d runtime allocations (%d bytes) never cleared", n, size).
			Build()
	}
	return nil
}

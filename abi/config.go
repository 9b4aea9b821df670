package abi

// WChar is the C wchar_t of the target platform.
type WChar = int32

// CInt is the C int.
type CInt = int32

// CULong is the C unsigned long on LP64 targets.
type CULong = uint64

// SSizeT is Py_ssize_t.
type SSizeT = int

// WideStringList mirrors PyWideStringList.
// Length must equal the number of elements Items points to.
type WideStringList struct {
	Length SSizeT  `c:"length"`
	Items  **WChar `c:"items"`
}

// Config mirrors PyConfig (CPython 3.9, non-Windows).
//
// Field order and widths must not be changed without re-auditing against
// the runtime headers.
type Config struct {
	ConfigInit            CInt   `c:"_config_init"`
	Isolated              CInt   `c:"isolated"`
	UseEnvironment        CInt   `c:"use_environment"`
	DevMode               CInt   `c:"dev_mode"`
	InstallSignalHandlers CInt   `c:"install_signal_handlers"`
	UseHashSeed           CInt   `c:"use_hash_seed"`
	HashSeed              CULong `c:"hash_seed"`
	Faulthandler          CInt   `c:"faulthandler"`
	UsePegParser          CInt   `c:"_use_peg_parser"`
	Tracemalloc           CInt   `c:"tracemalloc"`
	ImportTime            CInt   `c:"import_time"`
	ShowRefCount          CInt   `c:"show_ref_count"`
	DumpRefs              CInt   `c:"dump_refs"`
	MallocStats           CInt   `c:"malloc_stats"`

	FilesystemEncoding *WChar `c:"filesystem_encoding"`
	FilesystemErrors   *WChar `c:"filesystem_errors"`
	PycachePrefix      *WChar `c:"pycache_prefix"`

	ParseArgv   CInt           `c:"parse_argv"`
	Argv        WideStringList `c:"argv"`
	ProgramName *WChar         `c:"program_name"`
	Xoptions    WideStringList `c:"xoptions"`
	Warnoptions WideStringList `c:"warnoptions"`

	SiteImport        CInt `c:"site_import"`
	BytesWarning      CInt `c:"bytes_warning"`
	Inspect           CInt `c:"inspect"`
	Interactive       CInt `c:"interactive"`
	OptimizationLevel CInt `c:"optimization_level"`
	ParserDebug       CInt `c:"parser_debug"`
	WriteBytecode     CInt `c:"write_bytecode"`
	Verbose           CInt `c:"verbose"`
	Quiet             CInt `c:"quiet"`
	UserSiteDirectory CInt `c:"user_site_directory"`
	ConfigureCStdio   CInt `c:"configure_c_stdio"`
	BufferedStdio     CInt `c:"buffered_stdio"`

	StdioEncoding     *WChar `c:"stdio_encoding"`
	StdioErrors       *WChar `c:"stdio_errors"`
	CheckHashPycsMode *WChar `c:"check_hash_pycs_mode"`

	PathconfigWarnings CInt   `c:"pathconfig_warnings"`
	PythonpathEnv      *WChar `c:"pythonpath_env"`
	Home               *WChar `c:"home"`

	ModuleSearchPathsSet CInt           `c:"module_search_paths_set"`
	ModuleSearchPaths    WideStringList `c:"module_search_paths"`

	Executable     *WChar `c:"executable"`
	BaseExecutable *WChar `c:"base_executable"`
	Prefix         *WChar `c:"prefix"`
	BasePrefix     *WChar `c:"base_prefix"`
	ExecPrefix     *WChar `c:"exec_prefix"`
	BaseExecPrefix *WChar `c:"base_exec_prefix"`
	Platlibdir     *WChar `c:"platlibdir"`

	SkipSourceFirstLine CInt   `c:"skip_source_first_line"`
	RunCommand          *WChar `c:"run_command"`
	RunModule           *WChar `c:"run_module"`
	RunFilename         *WChar `c:"run_filename"`

	InstallImportlib    CInt `c:"_install_importlib"`
	InitMain            CInt `c:"_init_main"`
	IsolatedInterpreter CInt `c:"_isolated_interpreter"`

	OrigArgv WideStringList `c:"orig_argv"`
}

// ConfigInitMode values stored in Config.ConfigInit.
const (
	ConfigInitCompat   CInt = 1
	ConfigInitPython   CInt = 2
	ConfigInitIsolated CInt = 3
)

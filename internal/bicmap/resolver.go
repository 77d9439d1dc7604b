package bicmap

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/parsererror"
)

// Names and environment variables consulted when locating the BIC table.
const (
	EnvBICDir       = "SWIFT_BIC_DIR"
	FileNamePrimary = "bic_codes.xlsx"
	FileNameLegacy  = "bic.xlsx"
	appDirName      = "swift-csv"
	sharedDirName   = "SwiftCSV"
	dataDirName     = "data"
)

var fileNames = []string{FileNamePrimary, FileNameLegacy}

// Resolver locates, loads and caches the BIC table. It is safe for concurrent
// use; loading is serialized by an internal mutex.
type Resolver struct {
	logger       logging.Logger
	explicitPath string
	dataDir      string

	mu        sync.Mutex
	cache     *Mapping
	cachePath string
	lookupErr error

	executable func() (string, error)
}

// NewResolver creates a Resolver. explicitPath, when set, is used instead of
// searching; dataDir is an extra override directory searched after
// $SWIFT_BIC_DIR.
func NewResolver(logger logging.Logger, explicitPath, dataDir string) *Resolver {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Resolver{
		logger:       logger,
		explicitPath: explicitPath,
		dataDir:      dataDir,
		executable:   os.Executable,
	}
}

// Resolve returns the mapping for explicitPath, or for the configured or
// searched file when explicitPath is empty. The result is cached per absolute
// path; asking for another path replaces the cache.
func (r *Resolver) Resolve(explicitPath string) (*Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(explicitPath)
}

// Reload drops the cache and loads the table again.
func (r *Resolver) Reload() (*Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache, r.cachePath, r.lookupErr = nil, "", nil
	return r.resolveLocked("")
}

func (r *Resolver) resolveLocked(explicitPath string) (*Mapping, error) {
	if explicitPath == "" {
		explicitPath = r.explicitPath
	}
	path, err := r.locate(explicitPath)
	if err != nil {
		return nil, err
	}
	if r.cache != nil && r.cachePath == path {
		return r.cache, nil
	}

	m, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	m.Path = path
	r.cache, r.cachePath, r.lookupErr = m, path, nil

	r.logger.Info("Loaded BIC mapping",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: m.Len()})
	return m, nil
}

func (r *Resolver) locate(explicitPath string) (string, error) {
	if explicitPath != "" {
		abs, err := filepath.Abs(explicitPath)
		if err != nil {
			abs = explicitPath
		}
		if isFile(abs) {
			return abs, nil
		}
		return "", &parsererror.MappingNotFoundError{Tried: []string{abs}}
	}

	tried := r.Candidates()
	for _, c := range tried {
		if isFile(c) {
			if abs, err := filepath.Abs(c); err == nil {
				return abs, nil
			}
			return c, nil
		}
	}
	return "", &parsererror.MappingNotFoundError{Tried: tried}
}

// Candidates lists every path searched when no explicit file is configured,
// in priority order: override directories, the directory of the executable,
// then paths relative to the working directory.
func (r *Resolver) Candidates() []string {
	var dirs []string
	if d := os.Getenv(EnvBICDir); d != "" {
		dirs = append(dirs, d)
	}
	if r.dataDir != "" {
		dirs = append(dirs, r.dataDir)
	}
	if d := os.Getenv("PROGRAMDATA"); d != "" {
		dirs = append(dirs, filepath.Join(d, sharedDirName, dataDirName))
	}
	if d := userDataDir(); d != "" {
		dirs = append(dirs, filepath.Join(d, appDirName, dataDirName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, "."+appDirName, dataDirName))
	}
	if r.executable != nil {
		if exe, err := r.executable(); err == nil {
			dirs = append(dirs, filepath.Join(filepath.Dir(exe), dataDirName))
		}
	}

	var out []string
	for _, d := range dirs {
		for _, name := range fileNames {
			out = append(out, filepath.Join(d, name))
		}
	}
	for _, name := range fileNames {
		out = append(out, filepath.Join(dataDirName, name))
	}
	return append(out, fileNames...)
}

func userDataDir() string {
	if d := os.Getenv("LOCALAPPDATA"); d != "" {
		return d
	}
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// current returns the cached mapping, loading it on first use. A failed load is
// remembered and logged once; lookups then degrade to "not found".
func (r *Resolver) current() *Mapping {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache != nil {
		return r.cache
	}
	if r.lookupErr != nil {
		return nil
	}
	m, err := r.resolveLocked("")
	if err != nil {
		r.lookupErr = err
		r.logger.WithError(err).Warn("BIC mapping unavailable, institution names and countries will not be resolved")
		return nil
	}
	return m
}

// MapCodeToName resolves a code through the current mapping.
func (r *Resolver) MapCodeToName(code string) (string, bool) {
	return r.current().MapCodeToName(code)
}

// MapCodeToCountry resolves a code's country through the current mapping.
func (r *Resolver) MapCodeToCountry(code string) (string, bool) {
	return r.current().MapCodeToCountry(code)
}

// Find runs a fuzzy bank-name search over the current mapping.
func (r *Resolver) Find(query string, limit int) ([]Match, error) {
	m, err := r.Resolve("")
	if err != nil {
		return nil, err
	}
	return m.Find(query, limit), nil
}

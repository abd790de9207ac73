package filter

// Config is the filter configuration of a tree-building run.
//
// A package name is enabled iff (no include patterns OR any include pattern
// matches) AND no exclude pattern matches.
type Config struct {
	SolutionPath             string
	IncludePatterns          []string
	ExcludePatterns          []string
	IncludeDependentProjects bool

	include []Predicate
	exclude []Predicate
}

// NewConfig compiles include and exclude patterns. An invalid pattern is a
// configuration error.
func NewConfig(solutionPath string, include, exclude []string) (*Config, error) {
	inc, err := CompileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := CompileAll(exclude)
	if err != nil {
		return nil, err
	}
	return &Config{
		SolutionPath:    solutionPath,
		IncludePatterns: include,
		ExcludePatterns: exclude,
		include:         inc,
		exclude:         exc,
	}, nil
}

// ForSolution returns a copy of c targeting another solution file.
func (c *Config) ForSolution(path string) *Config {
	cp := *c
	cp.SolutionPath = path
	return &cp
}

// IsPackageEnabled reports whether name passes the include and exclude
// filters.
func (c *Config) IsPackageEnabled(name string) bool {
	return c.isIncluded(name) && !c.isExcluded(name)
}

func (c *Config) isIncluded(name string) bool {
	return len(c.include) == 0 || Any(c.include, name)
}

func (c *Config) isExcluded(name string) bool {
	return Any(c.exclude, name)
}

package config

const (
	// DefaultWptRoot is the default path to the WPT checkout
	DefaultWptRoot = "./wpt"
	// DefaultManifestFile is the manifest file name inside the WPT checkout
	DefaultManifestFile = "MANIFEST.json"
	// DefaultExpectationPath is the default path to the expectation baseline
	DefaultExpectationPath = "./expectation.json"
	// DefaultConfigFile is the optional YAML config file name
	DefaultConfigFile = "wptr.yaml"
	// DefaultHarnessScript is the entry script the runtime runs per test
	DefaultHarnessScript = "./harness/run.js"
	// DefaultSummaryPath is where run summaries land unless --json overrides it
	DefaultSummaryPath = "./storage/run-summary.json"
	// TestOrigin is the synthetic base origin test paths resolve against
	TestOrigin = "http://web-platform.test:8000"
)

// TestHostnames are the host entries the WPT server setup expects; the
// setup command verifies they resolve to loopback.
var TestHostnames = []string{
	"web-platform.test",
	"www.web-platform.test",
	"www1.web-platform.test",
	"www2.web-platform.test",
	"xn--n8j6ds53lwwkrqhv28a.web-platform.test",
	"xn--lve-6lad.web-platform.test",
}

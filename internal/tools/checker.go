package tools

import (
	"bytes"
	"os/exec"
	"strings"
)

// ToolRequirement represents an external tool dependency
type ToolRequirement struct {
	Name       string // Display name
	Binary     string // Executable name
	Required   bool   // Whether the tool is required
	InstallCmd string // Installation command
	Purpose    string // One-line description
}

// CheckResult represents the result of checking a single tool
type CheckResult struct {
	Tool    ToolRequirement
	Found   bool
	Path    string
	Version string
}

// DefaultTools returns the external tools surfwatch shells out to.
// Everything is best-effort: discovery degrades to crt.sh alone when
// the binaries are missing.
func DefaultTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:       "subfinder",
			Binary:     "subfinder",
			Required:   false,
			InstallCmd: "go install -v github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest",
			Purpose:    "Passive subdomain discovery",
		},
		{
			Name:       "assetfinder",
			Binary:     "assetfinder",
			Required:   false,
			InstallCmd: "go install -v github.com/tomnomnom/assetfinder@latest",
			Purpose:    "Passive subdomain discovery (secondary source)",
		},
		{
			Name:       "dnsx",
			Binary:     "dnsx",
			Required:   false,
			InstallCmd: "go install -v github.com/projectdiscovery/dnsx/cmd/dnsx@latest",
			Purpose:    "CNAME resolution for takeover detection",
		},
	}
}

// CheckTool looks up a single tool on PATH and queries its version.
func CheckTool(req ToolRequirement) CheckResult {
	result := CheckResult{Tool: req}

	path, err := exec.LookPath(req.Binary)
	if err != nil {
		return result
	}
	result.Found = true
	result.Path = path
	result.Version = toolVersion(req.Binary)

	return result
}

// CheckAll checks every default tool requirement.
func CheckAll() []CheckResult {
	reqs := DefaultTools()
	results := make([]CheckResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, CheckTool(req))
	}
	return results
}

// toolVersion asks the binary for its version string, best-effort.
func toolVersion(binary string) string {
	var out bytes.Buffer
	cmd := exec.Command(binary, "-version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	version := strings.TrimSpace(out.String())
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = version[:idx]
	}
	return version
}

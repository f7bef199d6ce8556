package tools

import (
	"context"
	"fmt"
	"strconv"
)

// RunSubfinder executes subfinder against the domain and returns the
// discovered subdomains, one per output line in silent mode.
// If threads > 0, it sets the thread count (-t flag).
func RunSubfinder(ctx context.Context, domain string, threads int, binaryPath string) ([]string, error) {
	binary := "subfinder"
	if binaryPath != "" {
		binary = binaryPath
	}

	args := []string{
		"-d", domain,
		"-all",
		"-silent",
	}
	if threads > 0 {
		args = append(args, "-t", strconv.Itoa(threads))
	}

	result, err := RunTool(ctx, binary, args...)
	if err != nil {
		return nil, fmt.Errorf("subfinder execution failed: %w", err)
	}

	return ParseLines(result.Stdout), nil
}

// RunAssetfinder executes assetfinder in subdomains-only mode and
// returns the discovered subdomains.
func RunAssetfinder(ctx context.Context, domain string, binaryPath string) ([]string, error) {
	binary := "assetfinder"
	if binaryPath != "" {
		binary = binaryPath
	}

	result, err := RunTool(ctx, binary, "--subs-only", domain)
	if err != nil {
		return nil, fmt.Errorf("assetfinder execution failed: %w", err)
	}

	return ParseLines(result.Stdout), nil
}

package tools

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// DNSRecord holds the resolved records for one subdomain as reported
// by dnsx in JSON mode.
type DNSRecord struct {
	Host   string   `json:"host"`
	A      []string `json:"a,omitempty"`
	CNAME  []string `json:"cname,omitempty"`
	Status string   `json:"status_code,omitempty"`
}

// RunDnsx resolves A and CNAME records for a list of subdomains. The
// targets are written to a temp file because dnsx reads its input list
// from disk. Output is JSONL, one record per resolved host; hosts with
// no records simply do not appear.
func RunDnsx(ctx context.Context, subdomains []string, binaryPath string) ([]DNSRecord, error) {
	binary := "dnsx"
	if binaryPath != "" {
		binary = binaryPath
	}

	input, err := os.CreateTemp("", "surfwatch-dnsx-*.txt")
	if err != nil {
		return nil, fmt.Errorf("creating dnsx input file: %w", err)
	}
	defer os.Remove(input.Name())

	for _, sub := range subdomains {
		fmt.Fprintln(input, sub)
	}
	if err := input.Close(); err != nil {
		return nil, fmt.Errorf("writing dnsx input file: %w", err)
	}

	result, err := RunTool(ctx, binary,
		"-l", input.Name(),
		"-a", "-cname", "-resp",
		"-json",
		"-silent",
	)
	if err != nil {
		return nil, fmt.Errorf("dnsx execution failed: %w", err)
	}

	var records []DNSRecord
	scanner := bufio.NewScanner(bytes.NewReader(result.Stdout))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec DNSRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// Some lines may be progress noise rather than JSON
			continue
		}
		if rec.Host != "" {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dnsx output: %w", err)
	}

	return records, nil
}

// Package monitor orchestrates a full monitoring run: discovery,
// probing, takeover verification, baseline comparison, escalation,
// reporting, and persistence.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/hakim/surfwatch/internal/config"
	"github.com/hakim/surfwatch/internal/diff"
	"github.com/hakim/surfwatch/internal/discovery"
	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/notify"
	"github.com/hakim/surfwatch/internal/probe"
	"github.com/hakim/surfwatch/internal/report"
	"github.com/hakim/surfwatch/internal/storage"
)

// timestampLayout is used in artifact filenames; it must stay
// filesystem-safe on every platform.
const timestampLayout = "20060102_150405"

// RunStore is the minimal bbolt contract required by the monitor.
// Using an interface keeps the package testable without a real database.
type RunStore interface {
	SaveRun(meta *models.RunMeta) error
	UpdateRunStatus(id string, status models.RunStatus) error
}

// Monitor runs the end-to-end monitoring flow for one or more domains.
type Monitor struct {
	Cfg      *config.Config
	Store    RunStore
	Notifier *notify.Notifier
}

// New wires a Monitor from application config.
func New(cfg *config.Config, store RunStore) *Monitor {
	return &Monitor{
		Cfg:   cfg,
		Store: store,
		Notifier: &notify.Notifier{
			WebhookURL: cfg.Notify.WebhookURL,
			MinLevel:   cfg.MinNotifyLevel(),
		},
	}
}

// RunResult summarises one monitoring run.
type RunResult struct {
	Meta     *models.RunMeta
	Baseline *models.Baseline

	// Changes is nil on a first run.
	Changes *models.ChangeSet
	Alert   models.AlertLevel

	ReportFile string
	Elapsed    time.Duration
}

// Run executes a complete monitoring pass for domain: collect the
// current snapshot, compare it against the stored baseline, persist
// everything, and deliver notifications when the alert level warrants.
//
// A first run (no stored baseline) captures and saves the snapshot
// without producing a change set. A corrupt stored baseline is an
// error — silently overwriting it would erase the comparison history.
func (m *Monitor) Run(ctx context.Context, domain string) (*RunResult, error) {
	scope := &Scope{AllowedDomains: m.Cfg.Scope.AllowedDomains}
	if err := scope.ValidateTarget(domain); err != nil {
		return nil, err
	}

	meta := models.NewRunMeta(domain)
	meta.Status = models.StatusRunning
	if err := m.Store.SaveRun(meta); err != nil {
		return nil, fmt.Errorf("saving run record: %w", err)
	}
	fmt.Printf("[*] Run ID: %s\n", meta.ID)

	result, err := m.run(ctx, domain, meta)
	if err != nil {
		if uerr := m.Store.UpdateRunStatus(meta.ID, models.StatusFailed); uerr != nil {
			fmt.Printf("[!] Warning: could not mark run failed: %v\n", uerr)
		}
		return nil, err
	}

	if err := m.Store.SaveRun(meta); err != nil {
		fmt.Printf("[!] Warning: could not persist run summary: %v\n", err)
	}
	if err := m.Store.UpdateRunStatus(meta.ID, models.StatusComplete); err != nil {
		fmt.Printf("[!] Warning: could not mark run complete: %v\n", err)
	}
	return result, nil
}

func (m *Monitor) run(ctx context.Context, domain string, meta *models.RunMeta) (*RunResult, error) {
	start := time.Now()
	timestamp := start.UTC().Format(timestampLayout)

	// Load the prior baseline before collecting so a corrupt file fails
	// fast, before any network work.
	previous, err := storage.LoadBaseline(m.Cfg.BaselineDir, domain)
	if err != nil {
		return nil, fmt.Errorf("loading stored baseline: %w", err)
	}

	current, err := m.Collect(ctx, domain)
	if err != nil {
		return nil, err
	}

	meta.SubdomainCount = current.SubdomainCount()
	meta.EndpointCount = current.EndpointCount()
	meta.TakeoverCount = len(current.Takeovers)

	result := &RunResult{Meta: meta, Baseline: current}

	if previous == nil {
		// First run: establish the baseline, nothing to compare.
		meta.FirstRun = true
		fmt.Printf("[*] No stored baseline for %s — establishing one\n", domain)

		path, err := storage.SaveBaseline(m.Cfg.BaselineDir, current)
		if err != nil {
			return nil, err
		}
		meta.BaselineFile = path
		fmt.Printf("[+] Baseline saved: %s\n", path)

		reportPath := storage.ReportPath(m.Cfg.ReportDir, domain, timestamp)
		if err := report.WriteBaselineReport(current, reportPath); err != nil {
			fmt.Printf("[!] Warning: could not write baseline report: %v\n", err)
		} else {
			result.ReportFile = reportPath
		}

		result.Elapsed = time.Since(start)
		return result, nil
	}

	// Compare and escalate.
	cs := diff.Compute(previous, current)
	cs.Timestamp = timestamp
	level := diff.Escalate(cs)

	result.Changes = cs
	result.Alert = level
	meta.Alert = level
	meta.ChangeCount = changeCount(cs)

	if cs.Empty() {
		fmt.Printf("[+] No changes detected for %s\n", domain)
	} else {
		fmt.Printf("[!] %d change(s) detected for %s — alert level: %s\n", meta.ChangeCount, domain, level)

		changesPath, err := storage.SaveChangeSet(m.Cfg.DiffDir, cs)
		if err != nil {
			return nil, err
		}
		meta.ChangesFile = changesPath
		fmt.Printf("[+] Change set saved: %s\n", changesPath)

		reportPath := storage.ReportPath(m.Cfg.ReportDir, domain, timestamp)
		if err := report.WriteChangeReport(cs, level, reportPath); err != nil {
			fmt.Printf("[!] Warning: could not write change report: %v\n", err)
		} else {
			result.ReportFile = reportPath
		}

		// Best effort only; the artifacts above are already on disk.
		if err := m.Notifier.SendChanges(cs, level); err != nil {
			fmt.Printf("[!] Warning: %v\n", err)
		}
	}

	// The new snapshot becomes the baseline for the next run.
	path, err := storage.SaveBaseline(m.Cfg.BaselineDir, current)
	if err != nil {
		return nil, err
	}
	meta.BaselineFile = path

	result.Elapsed = time.Since(start)
	return result, nil
}

// Collect gathers the current snapshot for domain: subdomain discovery,
// takeover verification, and an HTTP probe of every discovered host.
func (m *Monitor) Collect(ctx context.Context, domain string) (*models.Baseline, error) {
	fmt.Printf("[*] Discovering subdomains for %s\n", domain)

	disc := discovery.Run(ctx, domain, discovery.Config{
		SubfinderPath:    m.Cfg.Tools.Subfinder.Path,
		AssetfinderPath:  m.Cfg.Tools.Assetfinder.Path,
		DnsxPath:         m.Cfg.Tools.Dnsx.Path,
		SubfinderThreads: m.Cfg.Tools.Subfinder.Threads,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Printf("[+] Found %d subdomain(s)\n", len(disc.Subdomains))
	if len(disc.Takeovers) > 0 {
		fmt.Printf("[!] %d potential takeover candidate(s)\n", len(disc.Takeovers))
	}

	// Probe the apex and every discovered subdomain over HTTPS.
	targets := make([]string, 0, len(disc.Subdomains)+1)
	targets = append(targets, "https://"+domain)
	for _, sub := range disc.Subdomains {
		if sub == domain {
			continue
		}
		targets = append(targets, "https://"+sub)
	}

	fmt.Printf("[*] Probing %d endpoint(s)\n", len(targets))
	prober := probe.New(probe.Config{
		Workers:   m.Cfg.Probe.Workers,
		Timeout:   m.Cfg.ProbeTimeout(),
		UserAgent: m.Cfg.Probe.UserAgent,
	})
	endpoints := prober.ProbeAll(ctx, targets)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseline := models.NewBaseline(domain, time.Now().UTC().Format(time.RFC3339))
	baseline.Subdomains[domain] = true
	for _, sub := range disc.Subdomains {
		baseline.Subdomains[sub] = true
	}
	baseline.Endpoints = endpoints
	baseline.Takeovers = disc.Takeovers

	return baseline, nil
}

// changeCount totals every item in a change set for the run summary.
func changeCount(cs *models.ChangeSet) int {
	return len(cs.NewSubdomains) + len(cs.RemovedSubdomains) +
		len(cs.NewEndpoints) + len(cs.RemovedEndpoints) +
		len(cs.ChangedEndpoints) +
		len(cs.NewTakeovers) + len(cs.ResolvedTakeovers)
}

package bootstrap

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kbukum/streamkit/observability"
)

// InfrastructureInfo describes a telemetry provider started during bootstrap.
type InfrastructureInfo struct {
	Name    string
	Details string
}

// ResultInfo is one named line of task output.
type ResultInfo struct {
	Name  string
	Value string
	Err   error
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
	health          *observability.ServiceHealth
	results         []ResultInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetHealth records the health snapshot shown in the summary.
func (s *Summary) SetHealth(h *observability.ServiceHealth) {
	s.health = h
}

// TrackInfrastructure adds a started provider to the summary.
func (s *Summary) TrackInfrastructure(name, details string) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{Name: name, Details: details})
}

// TrackResult records the outcome of one unit of task work.
func (s *Summary) TrackResult(name, value string, err error) {
	s.results = append(s.results, ResultInfo{Name: name, Value: value, Err: err})
}

// Results returns the tracked results in insertion order.
func (s *Summary) Results() []ResultInfo {
	return append([]ResultInfo(nil), s.results...)
}

// Display writes the startup summary: infrastructure and health.
func (s *Summary) Display(w io.Writer) {
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s ✅ %s: %s\n", treePrefix(i, len(s.infrastructure)), inf.Name, inf.Details)
		}
		fmt.Fprintf(w, "\n")
	}

	if s.health == nil || len(s.health.Components) == 0 {
		fmt.Fprintf(w, "   └── No health checkers registered\n\n")
		return
	}

	fmt.Fprintf(w, "🏥 Health Check\n")
	healthy := 0
	for i, h := range s.health.Components {
		msg := ""
		if h.Message != "" {
			msg = fmt.Sprintf(" (%s)", h.Message)
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(s.health.Components)),
			healthStatusIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		for j, key := range sortedKeys(h.Details) {
			fmt.Fprintf(w, "   %s %s: %s\n", detailPrefix(i, len(s.health.Components), j, len(h.Details)), key, h.Details[key])
		}
		if h.Status == observability.HealthStatusUp {
			healthy++
		}
	}
	fmt.Fprintf(w, "\n")

	total := len(s.health.Components)
	if healthy == total {
		fmt.Fprintf(w, "✅ All components healthy (%d/%d)\n\n", healthy, total)
	} else {
		fmt.Fprintf(w, "⚠️  Some components have issues (%d/%d healthy)\n\n", healthy, total)
	}
}

// DisplayResults writes every tracked result as a tree.
func (s *Summary) DisplayResults(w io.Writer) {
	fmt.Fprintf(w, "📦 Results (%d)\n", len(s.results))
	for i, r := range s.results {
		if r.Err != nil {
			fmt.Fprintf(w, "   %s ❌ %s: %v\n", treePrefix(i, len(s.results)), r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "   %s ✅ %s: %s\n", treePrefix(i, len(s.results)), r.Name, r.Value)
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func detailPrefix(parent, parents, i, n int) string {
	stem := "│   "
	if parent == parents-1 {
		stem = "    "
	}
	return stem + treePrefix(i, n)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func healthStatusIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-anchornav/pkg/algorithms"
	"github.com/dd0wney/cluso-anchornav/pkg/config"
	"github.com/dd0wney/cluso-anchornav/pkg/health"
	"github.com/dd0wney/cluso-anchornav/pkg/history"
	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/navigation"
	"github.com/dd0wney/cluso-anchornav/pkg/simulation"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	tickStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(8)

	stateStyles = map[navigation.State]lipgloss.Style{
		navigation.NoRoute:            lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Width(20),
		navigation.RouteActive:        lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")).Width(20),
		navigation.DestinationReached: lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true).Width(20),
	}

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	scenarioPath := flag.String("scenario", "", "Path to YAML scenario to run")
	historyPath := flag.String("history", "", "Path to anchor history file (overrides config)")
	destination := flag.String("destination", "", "Destination waypoint id (overrides scenario)")
	list := flag.Bool("list", false, "List destinations and how many waypoints reach them, then exit")
	saveHistory := flag.Bool("save-history", false, "Record the scenario anchors and pairs in the history file")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	interval := flag.Duration("interval", -1, "Delay between ticks (overrides config)")
	flag.Parse()

	if err := run(*configPath, *scenarioPath, *historyPath, *destination, *list, *saveHistory, *metricsAddr, *interval); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

func run(configPath, scenarioPath, historyPath, destination string, list, saveHistory bool, metricsAddr string, interval time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if historyPath != "" {
		cfg.History.Path = historyPath
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}
	if interval >= 0 {
		cfg.Simulation.TickInterval = interval
	}

	logger := logging.NewStderrLogger(cfg.Logging.Level)
	reg := metrics.DefaultRegistry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prog := &progress{}
	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Addr, reg, newChecker(cfg, prog), logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var sc *simulation.Scenario
	if scenarioPath != "" {
		loaded, err := simulation.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		sc = loaded
		if destination != "" {
			sc.Destination = destination
		}
	}

	if saveHistory {
		if sc == nil {
			return errors.New("-save-history needs -scenario")
		}
		if err := recordHistory(cfg, sc, logger, reg); err != nil {
			return err
		}
	}

	if list {
		anchors, pairs, err := listSource(cfg, sc, logger, reg)
		if err != nil {
			return err
		}
		printDestinations(anchors, pairs, waypoint.Type(cfg.Navigation.DestinationType))
		return nil
	}

	if sc == nil {
		return errors.New("nothing to do: pass -scenario or -list")
	}
	return simulate(ctx, cfg, sc, prog, logger, reg)
}

// progress is the latest snapshot, shared with the health endpoints
type progress struct {
	mu   sync.Mutex
	snap navigation.Snapshot
	at   time.Time
}

func (p *progress) update(snap navigation.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
	p.at = time.Now()
}

func (p *progress) lastTick() (uint64, time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.Tick, p.at
}

func (p *progress) route() (bool, string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.Nearest != "", p.snap.State.String(), p.snap.Route.Hops()
}

func newChecker(cfg *config.Config, prog *progress) *health.Checker {
	maxIdle := 4 * cfg.Simulation.TickInterval
	if maxIdle < time.Second {
		maxIdle = time.Second
	}

	checker := health.NewChecker()
	checker.Register("navigation_loop", health.TickCheck(prog.lastTick, maxIdle))
	checker.Register("route", health.RouteCheck(prog.route))
	checker.RegisterReadiness("navigation_loop", health.TickCheck(prog.lastTick, maxIdle))
	if cfg.History.Path != "" {
		checker.Register("history", health.HistoryCheck(cfg.History.Path))
	}
	return checker
}

func serveMetrics(addr string, reg *metrics.Registry, checker *health.Checker, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	mux.Handle("/healthz", checker.HTTPHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", logging.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", logging.Error(err))
		}
	}()
	return srv
}

func openHistory(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) (*history.Store, error) {
	store := history.New(
		history.WithLimit(cfg.History.Limit),
		history.WithMaxAge(cfg.History.MaxAge),
		history.WithCompression(cfg.History.Compress),
		history.WithLogger(logger),
		history.WithMetrics(reg),
	)
	if err := store.Load(cfg.History.Path); err != nil {
		return nil, err
	}
	return store, nil
}

func recordHistory(cfg *config.Config, sc *simulation.Scenario, logger logging.Logger, reg *metrics.Registry) error {
	if cfg.History.Path == "" {
		return errors.New("-save-history needs a history path")
	}
	store, err := openHistory(cfg, logger, reg)
	if err != nil {
		return err
	}

	anchors, pairs := sc.Records()
	for _, a := range anchors {
		if err := store.AddAnchor(a.Name, string(a.ID), string(a.Type)); err != nil {
			logger.Warn("anchor not recorded", logging.WaypointID(string(a.ID)), logging.Error(err))
		}
	}
	for _, p := range pairs {
		if err := store.AddPair(string(p.ID1), string(p.ID2)); err != nil {
			logger.Warn("pair not recorded", logging.Error(err))
		}
	}

	if err := store.Save(cfg.History.Path); err != nil {
		return err
	}
	logger.Info("history saved",
		logging.Path(cfg.History.Path),
		logging.Int("anchors", len(store.Anchors())),
		logging.Int("pairs", len(store.Pairs())))
	return nil
}

// listSource prefers the persisted history and falls back to the scenario
func listSource(cfg *config.Config, sc *simulation.Scenario, logger logging.Logger, reg *metrics.Registry) ([]waypoint.AnchorRecord, []waypoint.PairRecord, error) {
	if cfg.History.Path != "" {
		store, err := openHistory(cfg, logger, reg)
		if err != nil {
			return nil, nil, err
		}
		anchors, pairs := store.Records()
		return anchors, pairs, nil
	}
	if sc != nil {
		anchors, pairs := sc.Records()
		return anchors, pairs, nil
	}
	return nil, nil, errors.New("-list needs -history or -scenario")
}

func printDestinations(anchors []waypoint.AnchorRecord, pairs []waypoint.PairRecord, destType waypoint.Type) {
	graph, warnings := waypoint.Build(anchors, pairs)

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d waypoints, %d edges", graph.Len(), graph.EdgeCount())))
	for _, w := range warnings {
		fmt.Println(errorStyle.Render("  skipped: " + w.Error()))
	}

	comps := algorithms.ConnectedComponents(graph)
	if len(comps.List) > 1 {
		fmt.Printf("  %d disconnected groups of waypoints\n", len(comps.List))
	}

	dests := graph.Destinations(destType)
	if len(dests) == 0 {
		fmt.Println("No destinations")
		return
	}

	for _, d := range dests {
		hops := algorithms.HopDistances(graph, d.ID)
		farthest := 0
		for _, h := range hops {
			if h > farthest {
				farthest = h
			}
		}
		fmt.Printf("  %s %s  reachable from %d/%d waypoints, at most %d hops\n",
			labelStyle.Render(string(d.ID)), d.Name, len(hops)-1, graph.Len()-1, farthest)
	}
}

func simulate(ctx context.Context, cfg *config.Config, sc *simulation.Scenario, prog *progress, logger logging.Logger, reg *metrics.Registry) error {
	sim, err := simulation.New(sc, logger, reg)
	if err != nil {
		return err
	}
	defer sim.Close()

	fmt.Println(titleStyle.Render(fmt.Sprintf("Scenario %s → %s", sc.Name, sc.Destination)))
	for _, w := range sim.Session.Warnings() {
		fmt.Println(errorStyle.Render("  skipped: " + w.Error()))
	}

	err = sim.Run(ctx, cfg.Simulation.TickInterval, cfg.Simulation.MaxTicks, func(snap navigation.Snapshot) {
		prog.update(snap)
		printSnapshot(snap, sim.Sink)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printSnapshot(snap navigation.Snapshot, sink *simulation.RecordingSink) {
	nearest := string(snap.Nearest)
	if nearest == "" {
		nearest = "-"
	}
	route := "-"
	if len(snap.Route) > 0 {
		route = snap.Route.String()
	}

	fmt.Printf("%s%s%s %-6s %s %-30s %s %d\n",
		tickStyle.Render(fmt.Sprintf("#%d", snap.Tick)),
		stateStyles[snap.State].Render(snap.State.String()),
		labelStyle.Render("nearest"), nearest,
		labelStyle.Render("route"), route,
		labelStyle.Render("markers"), snap.Markers)

	if !snap.RouteChanged {
		return
	}
	markers := sink.Live()
	sort.SliceStable(markers, func(i, j int) bool { return markers[i].Kind < markers[j].Kind })
	for _, m := range markers {
		fmt.Printf("        %s at (%.1f, %.1f, %.1f) heading %.0f°\n",
			m.Kind, m.Position.X, m.Position.Y, m.Position.Z, m.Heading)
	}
}

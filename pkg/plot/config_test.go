package plot

import (
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/sargas/network-rank/pkg/series"
)

var (
	withDisplay    = DisplayFunc(func() bool { return true })
	withoutDisplay = DisplayFunc(func() bool { return false })
)

func TestDerive_FixedLabels(t *testing.T) {
	cfg, err := Derive(Options{}, series.YearSpanUniform, withoutDisplay)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if cfg.Title != DefaultTitle || cfg.YLabel != "Percentile" || cfg.XLabel != "Date" {
		t.Errorf("unexpected labels: %q %q %q", cfg.Title, cfg.YLabel, cfg.XLabel)
	}
}

func TestDerive_TitleOverride(t *testing.T) {
	cfg, err := Derive(Options{Title: "IRC Rank"}, series.YearSpanUniform, withoutDisplay)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if cfg.Title != "IRC Rank" {
		t.Errorf("Title = %q, want %q", cfg.Title, "IRC Rank")
	}
}

func TestDerive_DateFormats(t *testing.T) {
	tests := []struct {
		name       string
		precision  Precision
		span       series.YearSpan
		wantInput  string
		wantOutput string
	}{
		{"date uniform", PrecisionDate, series.YearSpanUniform, "2006-01-02", "01/02"},
		{"date varies", PrecisionDate, series.YearSpanVaries, "2006-01-02", "2006-01-02"},
		{"date empty", PrecisionDate, series.YearSpanEmpty, "2006-01-02", "01/02"},
		{"datetime uniform", PrecisionDateTime, series.YearSpanUniform, DateKeyUnix, "01/02 15:04"},
		{"datetime varies", PrecisionDateTime, series.YearSpanVaries, DateKeyUnix, "2006-01-02 15:04"},
		{"default precision", "", series.YearSpanUniform, "2006-01-02", "01/02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Derive(Options{Precision: tt.precision}, tt.span, withoutDisplay)
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if cfg.DateInputFormat != tt.wantInput {
				t.Errorf("DateInputFormat = %q, want %q", cfg.DateInputFormat, tt.wantInput)
			}
			if cfg.DateOutputFormat != tt.wantOutput {
				t.Errorf("DateOutputFormat = %q, want %q", cfg.DateOutputFormat, tt.wantOutput)
			}
		})
	}
}

func TestDerive_VariesLabelsAreUnambiguous(t *testing.T) {
	a := time.Date(2009, 1, 5, 0, 0, 0, 0, time.UTC)
	b := time.Date(2010, 1, 5, 0, 0, 0, 0, time.UTC)

	for _, p := range []Precision{PrecisionDate, PrecisionDateTime} {
		cfg, err := Derive(Options{Precision: p}, series.YearSpanVaries, withoutDisplay)
		if err != nil {
			t.Fatalf("Derive() error = %v", err)
		}
		if a.Format(cfg.DateOutputFormat) == b.Format(cfg.DateOutputFormat) {
			t.Errorf("precision %s: labels for different years collide: %q", p, a.Format(cfg.DateOutputFormat))
		}
	}
}

func TestDerive_SecondaryAxis(t *testing.T) {
	cfg, err := Derive(Options{ShowTotals: true}, series.YearSpanUniform, withoutDisplay)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if !cfg.HasSecondaryAxis() || cfg.SecondaryAxisLabel != "Number Of Networks" {
		t.Errorf("SecondaryAxisLabel = %q, want Number Of Networks", cfg.SecondaryAxisLabel)
	}

	cfg, err = Derive(Options{ShowTotals: false}, series.YearSpanUniform, withoutDisplay)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if cfg.HasSecondaryAxis() || cfg.SecondaryAxisLabel != "" {
		t.Errorf("SecondaryAxisLabel = %q, want empty", cfg.SecondaryAxisLabel)
	}
	if cfg.ShowTotals {
		t.Error("ShowTotals should be false")
	}
}

func TestDerive_Smoothing(t *testing.T) {
	tests := []struct {
		in   Smoothing
		want Smoothing
	}{
		{SmoothCSplines, SmoothCSplines},
		{SmoothBezier, SmoothBezier},
		{SmoothNone, SmoothNone},
		{"", SmoothNone},
	}
	for _, tt := range tests {
		cfg, err := Derive(Options{Smoothing: tt.in}, series.YearSpanUniform, withoutDisplay)
		if err != nil {
			t.Fatalf("Derive(%q) error = %v", tt.in, err)
		}
		if cfg.Smoothing != tt.want {
			t.Errorf("Smoothing = %q, want %q", cfg.Smoothing, tt.want)
		}
	}
}

func TestDerive_Target(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		display Display
		want    Target
	}{
		{"png", Options{PNGPath: "out.png"}, withDisplay, Target{Kind: TargetFile, Path: "out.png", Format: FormatPNG}},
		{"svg", Options{SVGPath: "out.svg"}, withoutDisplay, Target{Kind: TargetFile, Path: "out.svg", Format: FormatSVG}},
		{"interactive", Options{}, withDisplay, Target{Kind: TargetInteractive}},
		{"text fallback", Options{}, withoutDisplay, Target{Kind: TargetText}},
		{"nil display", Options{}, nil, Target{Kind: TargetText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Derive(tt.opts, series.YearSpanUniform, tt.display)
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if cfg.Target != tt.want {
				t.Errorf("Target = %+v, want %+v", cfg.Target, tt.want)
			}
		})
	}
}

func TestDerive_FileTargetIgnoresDisplay(t *testing.T) {
	calls := 0
	probe := DisplayFunc(func() bool { calls++; return true })
	if _, err := Derive(Options{PNGPath: "x.png"}, series.YearSpanUniform, probe); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("display queried %d times for file output", calls)
	}
}

func TestDerive_Conflict(t *testing.T) {
	_, err := Derive(Options{PNGPath: "a.png", SVGPath: "a.svg"}, series.YearSpanUniform, withDisplay)
	if !errors.Is(err, ErrConfigurationConflict) {
		t.Errorf("expected ErrConfigurationConflict, got %v", err)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	opts := Options{ShowTotals: true, Smoothing: SmoothBezier, Precision: PrecisionDateTime}
	a, err := Derive(opts, series.YearSpanVaries, withDisplay)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		b, err := Derive(opts, series.YearSpanVaries, withDisplay)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("Derive() not deterministic: %+v != %+v", a, b)
		}
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"png only", Options{PNGPath: "a.png"}, false},
		{"both outputs", Options{PNGPath: "a.png", SVGPath: "a.svg"}, true},
		{"bad smoothing", Options{Smoothing: "spline"}, true},
		{"bad precision", Options{Precision: "hour"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfiguration_DateKeyRoundTrip(t *testing.T) {
	ts := time.Date(2009, 1, 5, 13, 45, 2, 0, time.Local)

	dateCfg, _ := Derive(Options{Precision: PrecisionDate}, series.YearSpanUniform, nil)
	if key := dateCfg.DateKey(ts); key != "2009-01-05" {
		t.Errorf("DateKey() = %q, want 2009-01-05", key)
	}
	got, err := dateCfg.ParseDateKey("2009-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2009, 1, 5, 0, 0, 0, 0, time.Local)) {
		t.Errorf("ParseDateKey() = %v", got)
	}

	timeCfg, _ := Derive(Options{Precision: PrecisionDateTime}, series.YearSpanUniform, nil)
	back, err := timeCfg.ParseDateKey(timeCfg.DateKey(ts))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(ts) {
		t.Errorf("datetime round trip = %v, want %v", back, ts)
	}

	if _, err := timeCfg.ParseDateKey("yesterday"); err == nil {
		t.Error("expected error for non-numeric key")
	}
}

func TestConfiguration_Normalize(t *testing.T) {
	ts := time.Date(2009, 1, 5, 13, 45, 2, 500, time.UTC)

	dateCfg, _ := Derive(Options{Precision: PrecisionDate}, series.YearSpanUniform, nil)
	if got := dateCfg.Normalize(ts); !got.Equal(time.Date(2009, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date Normalize() = %v", got)
	}

	timeCfg, _ := Derive(Options{Precision: PrecisionDateTime}, series.YearSpanUniform, nil)
	if got := timeCfg.Normalize(ts); !got.Equal(time.Date(2009, 1, 5, 13, 45, 2, 0, time.UTC)) {
		t.Errorf("datetime Normalize() = %v", got)
	}
}

func TestParseSmoothing(t *testing.T) {
	for _, name := range []string{"csplines", "bezier", "none"} {
		if _, err := ParseSmoothing(name); err != nil {
			t.Errorf("ParseSmoothing(%q) error = %v", name, err)
		}
	}
	if _, err := ParseSmoothing("sbezier"); err == nil {
		t.Error("expected error for unknown curve")
	}
}

func TestTerminalDisplay(t *testing.T) {
	dumb := TerminalDisplay{Out: os.Stdout, Getenv: func(string) string { return "dumb" }}
	if dumb.Available() {
		t.Error("TERM=dumb should not offer a display")
	}

	noOut := TerminalDisplay{Getenv: func(string) string { return "xterm" }}
	if noOut.Available() {
		t.Error("nil Out should not offer a display")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	file := TerminalDisplay{Out: f, Getenv: func(string) string { return "xterm" }}
	if file.Available() {
		t.Error("regular file should not offer a display")
	}

	if NoDisplay.Available() {
		t.Error("NoDisplay should report false")
	}
}

func TestTargetKind_String(t *testing.T) {
	if TargetText.String() != "text" || TargetInteractive.String() != "interactive" || TargetFile.String() != "file" {
		t.Error("unexpected TargetKind names")
	}
}

package paf

import (
	"math"
	"testing"

	"github.com/RyanBlaney/sonido-paf/internal/testutil"
	"github.com/RyanBlaney/sonido-paf/paf/config"
)

func TestFFTPeakFindsSine(t *testing.T) {
	const fs = 64.0
	// 640 samples pad to 1024: 10 Hz falls on bin 160
	data := testutil.DeterministicSine(10, fs, 1, 640)

	freq, binTime := FFTPeak(data, fs)
	if freq != 10 {
		t.Fatalf("freq=%v want 10", freq)
	}
	if binTime != 160/fs {
		t.Fatalf("binTime=%v want %v", binTime, 160/fs)
	}
}

func TestFFTPeakEmptyBand(t *testing.T) {
	freq, binTime := FFTPeak(testutil.DeterministicSine(1, 4, 1, 64), 4)
	if !math.IsNaN(freq) || !math.IsNaN(binTime) {
		t.Fatalf("freq=%v binTime=%v want NaN", freq, binTime)
	}
	if freq, _ := FFTPeak([]float64{1, 2}, 0); !math.IsNaN(freq) {
		t.Fatalf("freq=%v want NaN for fs=0", freq)
	}
}

func TestWelchPeak(t *testing.T) {
	const fs = 64.0
	params := config.DefaultSamplingParameters()
	data := testutil.Add(
		testutil.DeterministicSine(9.5, fs, 10, 64*30),
		testutil.DeterministicNoise(7, 1, 64*30),
	)

	// 6 s segments pad to 512 points, 0.125 Hz per bin
	if got := WelchPeak(data, fs, params); math.Abs(got-9.5) > 0.125 {
		t.Fatalf("WelchPeak=%v want 9.5", got)
	}

	if got := WelchPeak(data[:100], fs, params); !math.IsNaN(got) {
		t.Fatalf("WelchPeak on short data=%v want NaN", got)
	}
}

func TestWelchPeakDBTracksAmplitude(t *testing.T) {
	const fs = 64.0
	quiet := WelchPeakDB(testutil.DeterministicSine(10, fs, 1, 384), fs, 3, 0.25)
	loud := WelchPeakDB(testutil.DeterministicSine(10, fs, 10, 384), fs, 3, 0.25)

	// ten times the amplitude is +20 dB
	if math.Abs(loud-quiet-20) > 1e-6 {
		t.Fatalf("quiet=%v loud=%v diff=%v want 20", quiet, loud, loud-quiet)
	}
}

func TestSlidingFFTPeakSeries(t *testing.T) {
	const fs = 64.0
	params := config.DefaultSamplingParameters()
	data := testutil.DeterministicSine(10, fs, 1, 64*30)

	series := SlidingFFTPeakSeries(data, fs, params)

	// window 384, step 288: starts 0..1536
	if len(series) != 6 {
		t.Fatalf("len=%d want 6", len(series))
	}
	for i, p := range series {
		want := float64(i*288+192) / fs
		if p.Time != want {
			t.Fatalf("point %d time=%v want=%v", i, p.Time, want)
		}
		if math.IsNaN(p.PeakDB) || math.IsInf(p.PeakDB, 0) {
			t.Fatalf("point %d PeakDB=%v", i, p.PeakDB)
		}
	}
}

func TestSlidingFFTPeakSeriesStopsWithoutBandBins(t *testing.T) {
	// at 16 Hz the one-sided spectrum ends below 8 Hz
	series := SlidingFFTPeakSeries(make([]float64, 16*30), 16, config.DefaultSamplingParameters())
	if series == nil || len(series) != 0 {
		t.Fatalf("series=%v want empty non-nil", series)
	}
}

func TestWelchPeakSeries(t *testing.T) {
	const fs = 64.0
	params := config.DefaultSamplingParameters()
	data := testutil.DeterministicSine(10, fs, 1, 64*30)

	series := WelchPeakSeries(data, fs, params)
	if len(series) != 6 {
		t.Fatalf("len=%d want 6", len(series))
	}
	for i := 1; i < len(series); i++ {
		if series[i].Time-series[i-1].Time != 288/fs {
			t.Fatalf("spacing %v want %v", series[i].Time-series[i-1].Time, 288/fs)
		}
	}

	// blocks exist but no bin lies in the band
	nan := WelchPeakSeries(make([]float64, 16*30), 16, params)
	if len(nan) == 0 || !math.IsNaN(nan[0].PeakDB) {
		t.Fatalf("series=%v want NaN points", nan)
	}
	if !math.IsNaN(StrongestPoint(nan)) {
		t.Fatal("all-NaN series should have no strongest point")
	}
}

func TestStrongestPoint(t *testing.T) {
	series := []PeakPoint{
		{Time: 1, PeakDB: -3},
		{Time: 2, PeakDB: 5},
		{Time: 3, PeakDB: 5},
		{Time: 4, PeakDB: math.NaN()},
	}
	if got := StrongestPoint(series); got != 2 {
		t.Fatalf("StrongestPoint=%v want 2", got)
	}
	if got := StrongestPoint(nil); !math.IsNaN(got) {
		t.Fatalf("StrongestPoint(nil)=%v want NaN", got)
	}
}

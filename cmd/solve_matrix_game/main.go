// Solve two-player zero-sum matrix games and print their solutions.
package main

import (
	"flag"
	"math"
	"math/rand"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/golang/glog"

	"github.com/timpalpant/zerosum"
	"github.com/timpalpant/zerosum/internal/npyio"
	"github.com/timpalpant/zerosum/matrixgame"
)

// config holds defaults for the command-line flags.
type config struct {
	Precision           int    `env:"ZEROSUM_PRECISION" envDefault:"4"`
	Format              string `env:"ZEROSUM_FORMAT" envDefault:"text"`
	FictitiousPlayIters int    `env:"ZEROSUM_FICTITIOUS_PLAY_ITERS" envDefault:"0"`
	Seed                int64  `env:"ZEROSUM_SEED" envDefault:"1234"`
	NPZOutput           string `env:"ZEROSUM_NPZ_OUTPUT"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		glog.Fatalf("parse env: %v", err)
	}

	input := flag.String("input", "", "JSON file with a payoff matrix or a list of payoff matrices, or a 2-D .npy file, optionally gzipped (default: built-in examples)")
	precision := flag.Int("precision", cfg.Precision, "Decimal places of reported values and strategies")
	format := flag.String("format", cfg.Format, "Output format: text or json")
	fpIters := flag.Int("fictitious_play_iters", cfg.FictitiousPlayIters, "Iterations of fictitious play to cross-check LP solutions (0 to disable)")
	seed := flag.Int64("seed", cfg.Seed, "Random seed for fictitious play")
	npzOutput := flag.String("npz_output", cfg.NPZOutput, "If set, also save solutions to this .npz file")
	flag.Parse()

	matrices := builtinExamples()
	if *input != "" {
		var err error
		matrices, err = loadMatrices(*input)
		if err != nil {
			glog.Fatal(err)
		}
	}

	write, err := reportWriter(*format)
	if err != nil {
		glog.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	arrays := make(npzArrays)
	glog.Infof("Solving %d games", len(matrices))
	for i, m := range matrices {
		report, err := zerosum.Solve(m, zerosum.WithPrecision(*precision))
		if err != nil {
			glog.Fatalf("game %d: %v", i, err)
		}

		if err := write(os.Stdout, report); err != nil {
			glog.Fatal(err)
		}

		if *fpIters > 0 {
			crossCheck(m, report, *fpIters, rng)
		}

		if *npzOutput != "" {
			if err := arrays.add(i, report); err != nil {
				glog.Fatal(err)
			}
		}
	}

	if *npzOutput != "" {
		glog.Infof("Saving %d arrays to %v", len(arrays), *npzOutput)
		if err := npyio.MakeNPZ(arrays, *npzOutput); err != nil {
			glog.Fatal(err)
		}
	}
}

// crossCheck runs fictitious play on the game and logs whether its value
// bounds agree with the reported game value.
func crossCheck(m *zerosum.Matrix, report *zerosum.Report, nIter int, rng *rand.Rand) {
	game := m
	if report.Reduced != nil {
		game = report.Reduced.Matrix
	}

	p0, p1 := matrixgame.FictitiousPlay(game, nIter, 0, rng)
	lower, upper := matrixgame.ValueBounds(game, p0, p1)
	tol := 0.5 * math.Pow10(-report.Precision)
	if report.Value < lower-tol || report.Value > upper+tol {
		glog.Warningf("Game value %v outside fictitious play bounds [%v, %v]", report.Value, lower, upper)
	} else {
		glog.Infof("Fictitious play bounds [%.4f, %.4f] contain game value %v", lower, upper, report.Value)
	}
}

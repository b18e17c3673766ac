package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gorgonia/xorgate"
	"github.com/gorgonia/xorgate/encoding/gif"
	"github.com/sirupsen/logrus"
)

var (
	iters    = flag.Int("iters", 50*1000, "training iterations")
	rate     = flag.Float64("rate", 1e-1, "learning rate")
	eps      = flag.Float64("eps", 1e-1, "finite difference step")
	hidden   = flag.Int("hidden", 2, "hidden layer width")
	seed     = flag.Int64("seed", 1, "seed for the initial parameters")
	logEvery = flag.Int("log-every", 5000, "log the loss every n iterations (0 disables)")
	gifOut   = flag.String("gif", "", "write an animation of the decision surface to this file")
	gifEvery = flag.Int("gif-every", 1000, "iterations between animation frames")
	dotOut   = flag.String("dot", "", "write the trained network as a graphviz graph to this file")
	statsOut = flag.String("stats", "", "write the loss curve as csv to this file")
	verbose  = flag.Bool("v", false, "log training progress")
)

func main() {
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	conf := xorgate.DefaultConfig()
	conf.NNConf.Hidden = *hidden
	conf.Iterations = *iters
	conf.Rate = *rate
	conf.Epsilon = *eps
	conf.Seed = *seed
	conf.LogEvery = *logEvery

	var enc *gif.Encoder
	if *gifOut != "" {
		f, err := os.Create(*gifOut)
		if err != nil {
			logrus.Fatal(err)
		}
		defer f.Close()
		enc = gif.NewGifEncoder(64, 64, f)
		conf.OutputEncoder = enc
		conf.SnapshotEvery = *gifEvery
	}
	if !conf.IsValid() {
		logrus.Fatalf("invalid configuration %+v", conf)
	}

	ti, to, err := xorgate.Split(xorgate.XOR, conf.NNConf.Inputs, conf.NNConf.Outputs)
	if err != nil {
		logrus.Fatalf("%+v", err)
	}

	t := xorgate.New(conf)
	if err = t.Learn(ti, to); err != nil {
		logrus.Fatalf("%+v", err)
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			y, err := t.Infer([]float64{float64(i), float64(j)})
			if err != nil {
				logrus.Fatalf("%+v", err)
			}
			fmt.Printf("%d ^ %d = %v\n", i, j, y[0])
		}
	}

	if enc != nil {
		if err = enc.Flush(); err != nil {
			logrus.Fatalf("%+v", err)
		}
	}
	if *dotOut != "" {
		if err = os.WriteFile(*dotOut, []byte(t.Gate().ToDot()), 0644); err != nil {
			logrus.Fatal(err)
		}
	}
	if *statsOut != "" {
		if err = t.Dump(*statsOut); err != nil {
			logrus.Fatal(err)
		}
	}
}

package gate

// Config configures the shape of the network
type Config struct {
	Inputs  int // input width
	Hidden  int // hidden layer width
	Outputs int // output width
}

// DefaultConf is the 2→2→1 gate that learns a two-input boolean function.
func DefaultConf() Config {
	return Config{
		Inputs:  2,
		Hidden:  2,
		Outputs: 1,
	}
}

func (conf Config) IsValid() bool {
	return conf.Inputs >= 1 &&
		conf.Hidden >= 1 &&
		conf.Outputs >= 1
}

// ParamCount is the number of trainable scalars in a gate of this shape.
func (conf Config) ParamCount() int {
	return conf.Inputs*conf.Hidden + conf.Hidden + conf.Hidden*conf.Outputs + conf.Outputs
}

package optimizer

type Method string

const (
	MethodNelderMead Method = "nelder-mead"
	MethodBFGS       Method = "bfgs"
)

type Options struct {
	method          Method
	majorIterations int
	funcEvaluations int
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{
		method: MethodNelderMead,
	}

	for _, o := range option {
		o(opts)
	}

	return opts
}

func MethodOption(method Method) Option {
	return func(o *Options) {
		o.method = method
	}
}

// MajorIterationsOption caps the number of major iterations, 0 means no cap.
func MajorIterationsOption(n int) Option {
	return func(o *Options) {
		o.majorIterations = n
	}
}

// FuncEvaluationsOption caps the number of objective evaluations, 0 means no cap.
func FuncEvaluationsOption(n int) Option {
	return func(o *Options) {
		o.funcEvaluations = n
	}
}

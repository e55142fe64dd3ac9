package main

/*------------------------------------------------------------------
 *
 * Purpose:     Driver program for the AP demodulation engine: reads a YAML
 *		job file plus flat-text signal/upper-bound/coordinate files,
 *		runs Demodulate, and writes a tab-delimited trace of the
 *		recovered modulator and reconstructed carrier.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	apdemod "github.com/mgabriel-lt/apdemod"
)

// job is the YAML job-file shape: Params plus the file paths the core
// engine itself knows nothing about.
type job struct {
	Algorithm   string    `yaml:"algorithm"`
	Dimension   int       `yaml:"dimension"`
	Fs          []float64 `yaml:"fs"`
	Fc          []float64 `yaml:"fc"`
	Et          float64   `yaml:"et"`
	Iterations  int       `yaml:"iterations"`
	Ns          []int     `yaml:"ns"`
	Nr          []int     `yaml:"nr"`
	Compression float64   `yaml:"compression"`
	Break       bool      `yaml:"break"`
	ModSchedule []int     `yaml:"modulator_schedule"`
	ErrSchedule []int     `yaml:"error_schedule"`

	SignalFile     string `yaml:"signal_file"`
	UpperBoundFile string `yaml:"upper_bound_file"`
	CoordsFile     string `yaml:"coords_file"`
	OutputFile     string `yaml:"output_file"`
}

func main() {
	var jobFile = pflag.StringP("job-file", "f", "", "YAML job file describing the demodulation run.")
	var verbose = pflag.BoolP("verbose", "v", false, "Log progress at debug level.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "apdemod - AP demodulation engine driver.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: apdemod -f job.yaml\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || *jobFile == "" {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(*jobFile, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(jobPath string, logger *log.Logger) error {
	raw, err := os.ReadFile(jobPath)
	if err != nil {
		return fmt.Errorf("reading job file: %w", err)
	}

	var j job
	if err := yaml.Unmarshal(raw, &j); err != nil {
		return fmt.Errorf("parsing job file: %w", err)
	}

	par, err := j.toParams()
	if err != nil {
		return fmt.Errorf("building parameters: %w", err)
	}

	logger.Debug("loaded job", "algorithm", par.Algorithm, "dimension", par.D, "ni", par.Ni)

	signal, err := readFlatFloats(j.SignalFile)
	if err != nil {
		return fmt.Errorf("reading signal file: %w", err)
	}

	var upperBound []float64
	if j.UpperBoundFile != "" {
		upperBound, err = readFlatFloats(j.UpperBoundFile)
		if err != nil {
			return fmt.Errorf("reading upper bound file: %w", err)
		}
	}

	var coords []float64
	if j.CoordsFile != "" {
		coords, err = readFlatFloats(j.CoordsFile)
		if err != nil {
			return fmt.Errorf("reading coordinates file: %w", err)
		}
	}

	ns := len(signal)
	modOut := make([]float64, len(par.Im)*ns)
	errOut := make([]float64, len(par.Ie))

	apdemod.SetErrExit(false, logger)

	iter, err := apdemod.Demodulate(signal, par, upperBound, coords, modOut, errOut)
	if err != nil {
		return fmt.Errorf("demodulation: %w", err)
	}
	logger.Info("demodulation complete", "iterations", iter)

	modulator := modOut[len(modOut)-ns:]
	carrier := apdemod.Carrier(signal, modulator)

	out, err := os.Create(j.OutputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, "Index\tSignal\tMod. est.\tCarr. est.")
	for i := 0; i < ns; i++ {
		fmt.Fprintf(w, "%d\t%g\t%g\t%g\n", i, signal[i], modulator[i], carrier[i])
	}

	return nil
}

// toParams translates a job file into an apdemod.Params, filling the axis
// arrays from the job's flat slices.
func (j *job) toParams() (*apdemod.Params, error) {
	alg, err := parseAlgorithm(j.Algorithm)
	if err != nil {
		return nil, err
	}

	par := &apdemod.Params{
		Algorithm: alg,
		D:         j.Dimension,
		Et:        j.Et,
		Ni:        j.Iterations,
		Cp:        j.Compression,
		Br:        j.Break,
		Im:        j.ModSchedule,
		Ie:        j.ErrSchedule,
	}

	for d := 0; d < j.Dimension && d < len(j.Fs); d++ {
		par.Fs[d] = j.Fs[d]
	}
	for d := 0; d < j.Dimension && d < len(j.Fc); d++ {
		par.Fc[d] = j.Fc[d]
	}
	for d := 0; d < j.Dimension && d < len(j.Ns); d++ {
		par.Ns[d] = j.Ns[d]
	}
	for d := 0; d < j.Dimension && d < len(j.Nr); d++ {
		par.Nr[d] = j.Nr[d]
	}

	return par, nil
}

func parseAlgorithm(s string) (apdemod.Algorithm, error) {
	switch strings.ToLower(s) {
	case "basic":
		return apdemod.Basic, nil
	case "accelerated":
		return apdemod.Accelerated, nil
	case "projected":
		return apdemod.Projected, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want basic, accelerated, or projected)", s)
	}
}

// readFlatFloats reads one whitespace-separated float64 per token from a
// plain text file, in the same flat-dump convention the teacher's example
// output uses.
func readFlatFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", tok, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

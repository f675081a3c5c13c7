// Command llamago is the CLI driver for the text generator: it loads a
// hyperparameter file, vocabulary, and weight file, primes the decoder
// with a prompt, and streams sampled tokens to stdout.
//
// Grounded on the teacher's cmd.NewCLI cobra-root construction and
// original_source/src/main.rs for the exact flag set, defaults, and the
// "=== Model/Prompt/Output/Done ===" staged console output.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"llamago/config"
	"llamago/envconfig"
	"llamago/session"
	"llamago/vocab"
	"llamago/weightfile"
)

func newRootCmd() *cobra.Command {
	var (
		hpPath     string
		vocabPath  string
		weightPath string
		maxTokens  int
		temp       float32
		prompt     string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:           "llamago",
		Short:         "Run autoregressive text generation over a LLaMA-family weight file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, runArgs{
				hpPath:     hpPath,
				vocabPath:  vocabPath,
				weightPath: weightPath,
				maxTokens:  maxTokens,
				temp:       temp,
				prompt:     prompt,
				seed:       seed,
			})
		},
	}

	cmd.Flags().StringVar(&hpPath, "hp", "./model/stories110M/hp.yaml", "Hyperparameter file path")
	cmd.Flags().StringVar(&vocabPath, "vocab", "./model/stories110M/vocab.bin", "Vocab file path")
	cmd.Flags().StringVar(&weightPath, "weight", "./model/stories110M/weight.bin", "Weight file path")
	cmd.Flags().IntVarP(&maxTokens, "max", "n", int(envconfig.DefaultMaxTokens()), "Maximum number of tokens, counting the prompt tokens")
	cmd.Flags().Float32VarP(&temp, "temp", "t", 0.0, "Temperature for sampling")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Initial prompt string")
	cmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed used when temperature sampling")

	envVars := envconfig.AsMap()
	appendEnvDocs(cmd, []envconfig.EnvVar{envVars["LLAMAGO_DEBUG"], envVars["LLAMAGO_MAX_TOKENS"]})

	return cmd
}

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	usage := "\nEnvironment Variables:\n"
	for _, e := range envs {
		usage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + usage)
}

type runArgs struct {
	hpPath, vocabPath, weightPath string
	maxTokens                     int
	temp                          float32
	prompt                        string
	seed                          int64
}

func run(cmd *cobra.Command, a runArgs) error {
	out := cmd.OutOrStdout()

	hp, err := config.Load(a.hpPath)
	if err != nil {
		return err
	}

	voc, err := vocab.Load(a.vocabPath, hp.VocabSize)
	if err != nil {
		return err
	}

	weights, err := weightfile.Load(a.weightPath, hp)
	if err != nil {
		return err
	}

	promptToks := append([]int{vocab.SOS}, voc.StrToTok(a.prompt)...)

	fmt.Fprintln(out, "=== Model ===")
	fmt.Fprintf(out, "%+v\n", hp)

	sess := session.New(hp, weights)

	start := time.Now()

	fmt.Fprintln(out, "=== Prompt ===")
	for _, tok := range promptToks {
		s, err := voc.TokToStr(tok)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "=== Output ===")
	err = sess.Generate(session.Request{
		Prompt:      promptToks,
		MaxTokens:   a.maxTokens,
		Temperature: a.temp,
		Seed:        a.seed,
	}, func(tok int) error {
		s, err := voc.TokToStr(tok)
		if err != nil {
			return err
		}
		fmt.Fprint(out, s)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out)

	elapsed := time.Since(start).Seconds()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(out, "=== Done ===")
		fmt.Fprintf(out, " * %.3f [s]\n", elapsed)
		fmt.Fprintf(out, " * %.3f [tok/s]\n", float64(a.maxTokens)/elapsed)
	}

	return nil
}

func main() {
	slog.SetLogLoggerLevel(envconfig.LogLevel())

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("llamago failed", "error", err)
		os.Exit(1)
	}
}

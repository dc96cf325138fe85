// armdispatch — ARM/AArch64 CPU identification and multi-version
// target inspection.
//
// Usage:
//
//	armdispatch host
//	armdispatch resolve --cpu-target "generic;cortex-a76,+crc,clone_all"
//	armdispatch match image.tdat --cpu-target native
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/hartyporpoise/armdispatch/internal/catalog"
	"github.com/hartyporpoise/armdispatch/internal/config"
	"github.com/hartyporpoise/armdispatch/internal/dispatch"
	"github.com/hartyporpoise/armdispatch/internal/hostcpu"
)

func main() {
	var cfg config.Config

	root := &cobra.Command{
		Use:   "armdispatch",
		Short: "ARM CPU identification and multi-version target inspection",
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.CPUTarget, "cpu-target",
		env.Str("ARMDISPATCH_CPU_TARGET", "native"),
		"target string (cpu[,+feat,-feat,clone_all];...)")
	backendVersion := pf.Uint32("backend-version",
		uint32(env.Int("ARMDISPATCH_BACKEND_VERSION", 140000)),
		"compiler backend version (140000 = 14.0)")

	host := &cobra.Command{
		Use:   "host",
		Short: "Show the detected host CPU and features",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost()
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the target string and print backend targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BackendVersion = *backendVersion
			return runResolve(&cfg)
		},
	}

	match := &cobra.Command{
		Use:   "match <image.tdat>",
		Short: "Match serialized image variants against the resolved target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.BackendVersion = *backendVersion
			return runMatch(&cfg, args[0])
		},
	}

	root.AddCommand(host, resolve, match)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHost() error {
	info := hostcpu.Get()
	fam := catalog.Native

	fmt.Printf("CPU:  %s\n", hostcpu.Name())
	arch := fam.FeatureArch(info.Features)
	if arch.Profile != 0 {
		fmt.Printf("Arch: v%d (%c profile)\n", arch.Version, arch.Profile)
	} else {
		fmt.Printf("Arch: v%d\n", arch.Version)
	}

	fmt.Print("Features:")
	n := 0
	for _, fn := range fam.Features {
		if info.Features.Test(fn.Bit) {
			fmt.Printf(" %s", fn.Name)
			n++
		}
	}
	if n == 0 {
		fmt.Print(" none detected")
	}
	fmt.Println()

	printGoRuntimeFeatures()
	return nil
}

func runResolve(cfg *config.Config) error {
	d := dispatch.New(catalog.Native, cfg.BackendVersion)
	specs, err := d.CloneTargets(cfg.CPUTarget)
	if err != nil {
		return err
	}
	for i, s := range specs {
		fmt.Printf("target %d: %s\n", i, s.CPUName)
		fmt.Printf("  flags:    %s\n", flagNames(s.Flags))
		fmt.Printf("  base:     %d\n", s.Base)
		fmt.Printf("  features: %s\n", s.CPUFeatures)
	}
	return nil
}

func runMatch(cfg *config.Config, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image targets: %w", err)
	}
	d := dispatch.New(catalog.Native, cfg.BackendVersion)
	m, err := d.InitSysimg(blob, cfg.CPUTarget)
	if err != nil {
		return err
	}
	if m.BestIdx == dispatch.NoMatch {
		return fmt.Errorf("no match: %s", m.Reason)
	}
	fmt.Printf("best variant: %d (vector register size %d bytes)\n", m.BestIdx, m.VRegSize)
	return nil
}

// flagNames renders a directive flag word for humans.
func flagNames(flags uint32) string {
	if flags == 0 {
		return "none"
	}
	names := []struct {
		bit  uint32
		name string
	}{
		{dispatch.VecCall, "vec_call"},
		{dispatch.CloneAll, "clone_all"},
		{dispatch.CloneLoop, "clone_loop"},
		{dispatch.CloneSIMD, "clone_simd"},
		{dispatch.CloneMath, "clone_math"},
		{dispatch.CloneCPU, "clone_cpu"},
		{dispatch.CloneFloat16, "clone_float16"},
		{dispatch.UnknownName, "unknown_name"},
	}
	out := ""
	for _, n := range names {
		if flags&n.bit != 0 {
			if out != "" {
				out += " "
			}
			out += n.name
		}
	}
	return out
}

// Package cli implements the command-line interface for goatd, a kernel
// build orchestrator and Kconfig patcher.
//
// # Overview
//
// goatd drives a packager recipe (a PKGBUILD-style build script) and the
// kernel's Kconfig through a fixed pipeline of phases - Preparation,
// Configuration, Patching, Building, and Validation - producing a built
// kernel package whose .config matches a requested optimization profile,
// toolchain, and feature selection.
//
// # Commands
//
// build - Run the full pipeline:
//
//	goatd build --profile Gaming --variant cachyos --version latest
//	goatd build --profile Server --lto Full --scheduler bore --mglru
//	goatd build --profile Workstation --whitelist --modprobed-db
//
// Resolves the requested kernel version, patches the recipe's toolchain
// exports and the target .config, invokes the packager, and audits the
// resulting .config against what was requested. A checkpoint is written
// to the workspace after every phase.
//
// resume - Continue an interrupted build:
//
//	goatd resume --workspace ./build --profile Gaming --variant cachyos
//
// Reads the checkpoint left in the workspace and restarts the pipeline
// from that phase rather than from Preparation.
//
// validate - Audit an existing .config without driving a build:
//
//	goatd validate --config ./src/.config --profile Gaming --lto Thin
//	goatd validate --config ./src/.config --scheduler bore --strict
//
// Runs the same invariant checks the Validation phase runs, against a
// .config already on disk. Useful for re-checking a backup before
// restoring it, or for auditing a kernel built outside goatd.
//
// version - Print build metadata:
//
//	goatd version
//
// # Global Flags
//
//	--config       Path to a goatd config file (default: $HOME/.goatd.yaml)
//	--log-level    Log verbosity: debug, info, warn, error (default: info)
//
// # Environment Variables
//
//	GOATD_LOG_LEVEL   Read only when --log-level is set to an empty string;
//	                  the flag's default of info otherwise takes precedence
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid flags, patch failure, build failure)
//
// # Architecture
//
// The CLI uses the spf13/cobra and spf13/viper stack and delegates to:
//   - pkg/orchestrator - Phase state machine driving the build
//   - pkg/buildconfig  - Profile presets and feature-toggle resolution
//   - pkg/recipe       - Recipe (PKGBUILD) patching
//   - pkg/kconfig      - Kconfig (.config) patching
//   - pkg/audit        - Post-build invariant checking
//   - pkg/logging      - Structured logging and packager output dispatch
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/madgoathaz/goatd/pkg/cli.version=1.0.0'"
package cli

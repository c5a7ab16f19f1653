// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package templates

import (
	"strings"
	"testing"
)

func TestRenderStaticFragmentsContainSentinel(t *testing.T) {
	cases := []struct {
		name     string
		render   func() (string, error)
		sentinel string
	}{
		{"toolchain exports", ToolchainExports, "END GOATD TOOLCHAIN ENFORCEMENT BLOCK"},
		{"whitelist block", WhitelistBlock, "END WHITELIST BLOCK"},
		{"gate g2", GateG2, "END GATE G2 BLOCK"},
		{"gate p5", GateP5, "END GATE P5 BLOCK"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.render()
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(out, tc.sentinel) {
				t.Errorf("output missing sentinel %q:\n%s", tc.sentinel, out)
			}
		})
	}
}

func TestModprobedBlockInterpolatesKernelVariant(t *testing.T) {
	out, err := ModprobedBlock(ModprobedBlockData{KernelVariant: "linux-goatd"})
	if err != nil {
		t.Fatalf("ModprobedBlock: %v", err)
	}
	if !strings.Contains(out, "linux-goatd-*") {
		t.Errorf("expected kernel variant glob in output, got:\n%s", out)
	}
}

func TestMPLSourceInterpolatesWorkspaceRoot(t *testing.T) {
	out, err := MPLSource(MPLSourceData{WorkspaceRoot: "/var/lib/goatd"})
	if err != nil {
		t.Fatalf("MPLSource: %v", err)
	}
	if !strings.Contains(out, "/var/lib/goatd/.goatd_metadata") {
		t.Errorf("expected workspace root path in output, got:\n%s", out)
	}
}

func TestModulePathBridgeHeadersToggle(t *testing.T) {
	withHeaders, err := ModulePathBridge(ModulePathBridgeData{
		Headers: true,
		PkgVer:  "6.19.0",
		PkgRel:  "1",
		Suffix:  "goatd",
	})
	if err != nil {
		t.Fatalf("ModulePathBridge: %v", err)
	}
	if !strings.Contains(withHeaders, "usr/src/linux-") {
		t.Errorf("expected headers symlink block when Headers=true, got:\n%s", withHeaders)
	}

	withoutHeaders, err := ModulePathBridge(ModulePathBridgeData{Headers: false})
	if err != nil {
		t.Fatalf("ModulePathBridge: %v", err)
	}
	if strings.Contains(withoutHeaders, "usr/src/linux-") {
		t.Errorf("expected no headers symlink block when Headers=false, got:\n%s", withoutHeaders)
	}
}

func TestModulePathBridgeLiteralRelease(t *testing.T) {
	out, err := ModulePathBridge(ModulePathBridgeData{LiteralRelease: "6.19.0-goatd"})
	if err != nil {
		t.Fatalf("ModulePathBridge: %v", err)
	}
	if !strings.Contains(out, `_actual_ver="6.19.0-goatd"`) {
		t.Errorf("expected literal release to be used verbatim, got:\n%s", out)
	}
	if strings.Contains(out, "GOATD_KERNELRELEASE") {
		t.Errorf("expected discovery fallback to be skipped when literal release is set, got:\n%s", out)
	}
}

func TestGateLTOFragmentsCarryLTOBlock(t *testing.T) {
	data := GateLTOData{LTOBlock: `echo "CONFIG_LTO_CLANG_THIN=y" >> .config`}
	renderers := map[string]func(GateLTOData) (string, error){
		"g1": GateG1,
		"e1": GateE1,
	}
	for name, fn := range renderers {
		out, err := fn(data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.Contains(out, data.LTOBlock) {
			t.Errorf("%s: expected LTO block in output, got:\n%s", name, out)
		}
	}
}

func TestGateG25TogglesOptionalBlocks(t *testing.T) {
	out, err := GateG25(GateG25Data{
		UseModprobedDB: true,
		UseBORE:        false,
		UseMGLRU:       true,
		LTOBlock:       `echo "CONFIG_LTO_NONE=y" >> .config`,
	})
	if err != nil {
		t.Fatalf("GateG25: %v", err)
	}
	if !strings.Contains(out, "localmodconfig") {
		t.Errorf("expected modprobed re-apply block when UseModprobedDB=true, got:\n%s", out)
	}
	if strings.Contains(out, "CONFIG_SCHED_BORE") {
		t.Errorf("expected no BORE block when UseBORE=false, got:\n%s", out)
	}
	if !strings.Contains(out, "CONFIG_LRU_GEN_ENABLED") {
		t.Errorf("expected MGLRU block when UseMGLRU=true, got:\n%s", out)
	}
}

func TestLoadIsCachedAcrossCalls(t *testing.T) {
	first, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first != second {
		t.Error("expected load() to return the same cached *template.Template on repeated calls")
	}
}

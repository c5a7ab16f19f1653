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

package recipe

import (
	"strings"

	"github.com/madgoathaz/goatd/pkg/templates"
)

const whitelistSentinel = "KERNEL WHITELIST PROTECTION"

// applyWhitelistBlock injects the boot-critical driver whitelist
// immediately after the modprobed-db block's end sentinel, guaranteeing
// the filtered module set still boots. Requires the modprobed pass to
// have already run in this same patch application.
func applyWhitelistBlock(content string) (string, error) {
	if hasSentinel(content, whitelistSentinel) {
		return content, nil
	}

	idx := strings.Index(content, modprobedSentinel)
	if idx == -1 {
		return content, nil
	}
	insertAt := idx + len(modprobedSentinel)

	block, err := templates.WhitelistBlock()
	if err != nil {
		return "", err
	}

	return content[:insertAt] + "\n" + block + content[insertAt:], nil
}

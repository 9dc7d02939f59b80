/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package opts

import (
	"os"
	"strconv"
)

// DefaultVerify seeds the process-wide default Config's Verify bit. It can
// be forced on for a whole process (e.g. in CI) with BITBLT_VERIFY=1
// without touching call sites.
var DefaultVerify = parseBoolOrDefault("BITBLT_VERIFY", false)

func parseBoolOrDefault(key string, def bool) bool {
	env := os.Getenv(key)
	if env == "" {
		return def
	}
	v, err := strconv.ParseBool(env)
	if err != nil {
		panic("bitblt: invalid value for " + key)
	}
	return v
}

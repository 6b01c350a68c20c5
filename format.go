// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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

package structcfg

import "rivaas.dev/structcfg/codec"

// detectFormat selects the registered format for the extension of path.
//
// Errors:
//   - Returns [ErrMissingFileExtension] if path has no extension
//   - Returns [*InvalidFileFormatError] if no format handles it
func detectFormat(path string) (codec.Format, error) {
	return codec.ForPath(path)
}

func lookupFormat(t codec.Type) (codec.Format, error) {
	return codec.Lookup(t)
}

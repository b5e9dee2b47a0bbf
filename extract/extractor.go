// Copyright 2025 Amazee Labs
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


package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmazeeLabs/chat-ai/core"
)

// Extractor turns a content source reference into plain text ready for
// chunking. A source is typically an http(s) URL or a local file path.
type Extractor interface {
	Extract(ctx context.Context, source string) (string, error)
}

// Composite dispatches to a scheme-specific extractor based on the source
// prefix. Sources without a recognized scheme are treated as file paths.
type Composite struct {
	http Extractor
	file Extractor
}

// NewComposite builds the default extractor covering http(s) URLs and
// local files.
func NewComposite(opts ...HTTPOption) *Composite {
	return &Composite{
		http: NewHTTPExtractor(opts...),
		file: &FileExtractor{},
	}
}

func (c *Composite) Extract(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("%w: empty source", core.ErrExtraction)
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return c.http.Extract(ctx, source)
	}
	return c.file.Extract(ctx, source)
}

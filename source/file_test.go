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

//go:build !integration

package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"rivaas.dev/structcfg/codec"
	"rivaas.dev/structcfg/value"
)

type FileSourceTestSuite struct {
	suite.Suite
	tmpFile string
}

func (s *FileSourceTestSuite) SetupTest() {
	s.tmpFile = filepath.Join(s.T().TempDir(), "config.json")
	s.Require().NoError(os.WriteFile(s.tmpFile, []byte(`{"foo": "bar", "port": 8080}`), 0o600))
}

func TestFileSourceTestSuite(t *testing.T) {
	suite.Run(t, new(FileSourceTestSuite))
}

func (s *FileSourceTestSuite) TestLoad_ValidFile() {
	file := NewFile(s.tmpFile, codec.JSONCodec{})
	conf, err := file.Load(context.TODO())
	s.Require().NoError(err)

	want := value.Section(map[string]value.Value{
		"foo":  value.Scalar("bar"),
		"port": value.Scalar("8080"),
	})
	s.True(value.Equal(want, conf), "got %s", conf)
	s.Equal(s.tmpFile, file.Path())
}

func (s *FileSourceTestSuite) TestLoad_RereadsOnEveryCall() {
	file := NewFile(s.tmpFile, codec.JSONCodec{})
	_, err := file.Load(context.TODO())
	s.Require().NoError(err)

	s.Require().NoError(os.WriteFile(s.tmpFile, []byte(`{"foo": "baz"}`), 0o600))
	conf, err := file.Load(context.TODO())
	s.Require().NoError(err)

	foo, _ := conf.Get("foo")
	s.Equal("baz", foo.String())
}

func (s *FileSourceTestSuite) TestLoad_EmptyFile() {
	tmp := filepath.Join(s.T().TempDir(), "empty.yaml")
	s.Require().NoError(os.WriteFile(tmp, nil, 0o600))

	conf, err := NewFile(tmp, codec.YAMLCodec{}).Load(context.TODO())
	s.Require().NoError(err)
	s.True(conf.IsNull())
}

func (s *FileSourceTestSuite) TestLoad_MissingFile() {
	file := NewFile("/invalid/path/shouldfail.json", codec.JSONCodec{})
	_, err := file.Load(context.TODO())
	s.Require().Error(err)
	s.True(errors.Is(err, fs.ErrNotExist))
}

func (s *FileSourceTestSuite) TestLoad_Content() {
	file := NewFileContent([]byte("foo = \"bar\""), codec.TOMLCodec{})
	conf, err := file.Load(context.TODO())
	s.Require().NoError(err)

	foo, _ := conf.Get("foo")
	s.Equal("bar", foo.String())
	s.Empty(file.Path())
}

func (s *FileSourceTestSuite) TestLoad_DecodeError() {
	file := NewFileContent([]byte("foo = ["), codec.TOMLCodec{})
	_, err := file.Load(context.TODO())
	s.Require().Error(err)

	var parseErr *codec.ParseError
	s.Require().ErrorAs(err, &parseErr)
	s.Contains(err.Error(), "TOML parsing error: ")
}

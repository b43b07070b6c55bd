/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"fmt"

	liberr "github.com/haoxingeng/ise-sub000/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Load reads path (any format viper supports: yaml, toml, json, ini) into
// Options on top of Default(), validates it, clamps the fields that have a
// sane floor, and raises a ConfigError for anything that must be rejected
// outright instead.
func Load(path string) (Options, liberr.Error) {
	opt := Default()

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return opt, liberr.Config("reading config file "+path, err)
	}

	if err := v.Unmarshal(&opt, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return opt, liberr.Config("decoding options", err)
	}

	opt.Clamp()

	if err := validate.Struct(opt); err != nil {
		return opt, liberr.Config("validating options", err)
	}

	if len(opt.UdpGroups) != opt.UdpRequestGroupCount {
		return opt, liberr.Config(fmt.Sprintf(
			"udpRequestGroupCount=%d but %d group(s) configured", opt.UdpRequestGroupCount, len(opt.UdpGroups)), nil)
	}

	if opt.TcpServerCount != len(opt.TcpServers) {
		return opt, liberr.Config(fmt.Sprintf(
			"tcpServerCount=%d but %d server(s) configured", opt.TcpServerCount, len(opt.TcpServers)), nil)
	}

	return opt, nil
}

// Validate runs the same checks Load runs, for callers (e.g. a business
// object's initIseOptions) that build Options programmatically instead of
// loading a file.
func Validate(opt *Options) liberr.Error {
	opt.Clamp()
	if err := validate.Struct(opt); err != nil {
		return liberr.Config("validating options", err)
	}
	if len(opt.UdpGroups) != opt.UdpRequestGroupCount {
		return liberr.Config(fmt.Sprintf(
			"udpRequestGroupCount=%d but %d group(s) configured", opt.UdpRequestGroupCount, len(opt.UdpGroups)), nil)
	}
	if opt.TcpServerCount != len(opt.TcpServers) {
		return liberr.Config(fmt.Sprintf(
			"tcpServerCount=%d but %d server(s) configured", opt.TcpServerCount, len(opt.TcpServers)), nil)
	}
	return nil
}

/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package logging builds the zap logger used by the cssimport CLI.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns a console logger writing to w.
//
// "none" disables logging, "normal" logs warnings and errors, "debug" logs
// everything.
func New(level string, w io.Writer) (*zap.Logger, error) {
	var enabler zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		enabler = zapcore.WarnLevel
	case LevelDebug:
		enabler = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of none, normal, debug", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), enabler)
	return zap.New(core).Named("cssimport"), nil
}

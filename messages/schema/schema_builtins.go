// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package schema

type builtin struct {
	name       string
	containers map[Language]string
	defaults   map[Language]string
}

func literals(v Value) map[Language]string {
	out := make(map[Language]string, len(languages))
	for _, lang := range languages {
		out[lang] = v.Literal(lang)
	}
	return out
}

func builtins() []builtin {
	return []builtin{
		{
			name:       "short",
			containers: map[Language]string{LanguageCpp: "int16_t", LanguagePython: "int"},
			defaults:   literals(IntValue(0)),
		},
		{
			name:       "int",
			containers: map[Language]string{LanguageCpp: "int32_t", LanguagePython: "int"},
			defaults:   literals(IntValue(0)),
		},
		{
			name:       "long",
			containers: map[Language]string{LanguageCpp: "int64_t", LanguagePython: "echolib.long"},
			defaults:   literals(IntValue(0)),
		},
		{
			name:       "float",
			containers: map[Language]string{LanguageCpp: "float", LanguagePython: "float"},
			defaults:   literals(FloatValue(0)),
		},
		{
			name:       "double",
			containers: map[Language]string{LanguageCpp: "double", LanguagePython: "echolib.double"},
			defaults:   literals(FloatValue(0)),
		},
		{
			name:       "bool",
			containers: map[Language]string{LanguageCpp: "bool", LanguagePython: "bool"},
			defaults:   literals(BoolValue(false)),
		},
		{
			name:       "char",
			containers: map[Language]string{LanguageCpp: "char", LanguagePython: "echolib.char"},
			defaults:   map[Language]string{LanguageCpp: `'\0'`, LanguagePython: `'\0'`},
		},
		{
			name:       "string",
			containers: map[Language]string{LanguageCpp: "std::string", LanguagePython: "str"},
			defaults:   literals(TextValue("")),
		},
		{
			name: "timestamp",
			containers: map[Language]string{
				LanguageCpp:    "std::chrono::system_clock::time_point",
				LanguagePython: "datetime.datetime",
			},
		},
		{
			name:       "header",
			containers: map[Language]string{LanguageCpp: "echolib::Header", LanguagePython: "echolib.Header"},
			defaults:   map[Language]string{LanguageCpp: "echolib::Header()", LanguagePython: "echolib.Header()"},
		},
		{
			name:       "array",
			containers: map[Language]string{LanguageCpp: "echolib::Array", LanguagePython: "numpy.ndarray"},
			defaults:   map[Language]string{LanguageCpp: "echolib::Array()", LanguagePython: "numpy.zeros((0,))"},
		},
		{
			name:       "tensor",
			containers: map[Language]string{LanguageCpp: "echolib::Array", LanguagePython: "numpy.ndarray"},
			defaults:   map[Language]string{LanguageCpp: "echolib::Tensor()", LanguagePython: "numpy.zeros((0,))"},
		},
	}
}

func builtinSources() map[Language][]string {
	return map[Language][]string{
		LanguageCpp:    {"vector", "chrono", "echolib/datatypes.h", "echolib/array.h"},
		LanguagePython: {"echolib", "datetime", "numpy"},
	}
}

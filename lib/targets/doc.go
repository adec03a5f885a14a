// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package targets decodes and validates the target configuration
// document: for each platform, the target triples to build and how to
// build them.
//
//	linux:
//	  x86_64_v3-unknown-linux-gnu:
//	    arch: x86_64
//	    arch_variant: v3
//	    libc: gnu
//	    run: true
//	    python_versions: ["3.12", "3.13", "3.14"]
//	    build_options: [debug, pgo+lto]
//	    build_options_conditional:
//	      - options: [freethreaded+debug, freethreaded+pgo+lto]
//	        minimum-python-version: "3.13"
//
// Platforms and triples keep document order, which is the order matrix
// entries are emitted in. Optional fields are pointers so that "absent"
// and "empty" stay distinguishable; in particular an absent run flag
// means "run when the runner is native", which is decided at expansion
// time once a runner has been chosen.
package targets

package pyemit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trevadelman/fantom/internal/pysig"
)

// imports resolves how each referenced type is spelled inside one generated
// file and accumulates the top-of-file import statements that spelling
// requires. Three forms exist:
//
//   - direct:     from fan.<pod>.<Name> import <Name>   (bases, mixins, Obj,
//                 ObjUtil, catch-clause exceptions — Python needs these bound
//                 in local scope)
//   - namespace:  from fan import <pod>, then <pod>.<Name> at each use
//                 (cross-pod references; sys gets this form from every
//                 non-sys pod)
//   - dynamic:    __import__('fan.<pod>.<Name>', fromlist=['<Name>']).<Name>
//                 at each use (same-pod references — breaks module
//                 initialization cycles at the cost of a per-call lookup the
//                 runtime caches)
type imports struct {
	currentPod  string
	currentType string

	direct map[string]string // "pod/Name" -> Name
	sysNS  bool              // from fan import sys
	podNS  map[string]bool   // from fan import <pod>
}

func newImports(pod, typeName string) *imports {
	return &imports{
		currentPod:  pod,
		currentType: typeName,
		direct:      map[string]string{},
		podNS:       map[string]bool{},
	}
}

// addDirect registers a type for direct top-of-file import.
func (im *imports) addDirect(pod, name string) {
	im.direct[pod+"/"+name] = name
}

// classRef returns the expression text referencing the class pod::name from
// the current file, registering whatever import the chosen form needs.
func (im *imports) classRef(pod, name string) string {
	if im.direct[pod+"/"+name] != "" {
		return name
	}
	if name == im.currentType && pod == im.currentPod {
		return name // own class statement is in scope
	}
	if pod == "sys" && im.currentPod != "sys" {
		im.sysNS = true
		return "sys." + name
	}
	if pod == im.currentPod {
		return fmt.Sprintf("__import__('fan.%s.%s', fromlist=['%s']).%s", pod, name, name, name)
	}
	im.podNS[pod] = true
	return pod + "." + name
}

// classRefQname is classRef keyed by a "pod::Name" qname.
func (im *imports) classRefQname(qname string) string {
	return im.classRef(pysig.PodOf(qname), pysig.NameOf(qname))
}

// helperRef resolves a runtime helper constant of the form "Class.member".
// Obj and ObjUtil are always directly imported; the remaining runtime classes
// follow the normal sys-type rules.
func (im *imports) helperRef(dotted string) string {
	class, member, ok := strings.Cut(dotted, ".")
	if !ok {
		return im.classRef("sys", dotted)
	}
	if class == "Obj" || class == "ObjUtil" {
		im.addDirect("sys", class)
		return class + "." + member
	}
	return im.classRef("sys", class) + "." + member
}

// writeMinimal emits only the namespace imports a standalone appended block
// needs (the native-merge reflection block).
func (im *imports) writeMinimal(e *emitter) {
	if im.sysNS {
		e.line("from fan import sys")
	}
	pods := make([]string, 0, len(im.podNS))
	for p := range im.podNS {
		pods = append(pods, p)
	}
	sort.Strings(pods)
	for _, p := range pods {
		e.line("from fan import %s", p)
	}
}

// write emits the import regions of the file header: path setup, type-hint
// imports, sys namespace, direct imports, pod namespaces.
func (im *imports) write(e *emitter) {
	e.line("import sys as sys_module")
	e.line("sys_module.path.insert(0, '.')")
	e.blank()
	e.line("from typing import Optional, Callable, List as TypingList, Dict as TypingDict")

	if im.sysNS {
		e.line("from fan import sys")
	}

	keys := make([]string, 0, len(im.direct))
	for k := range im.direct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pod, _, _ := strings.Cut(k, "/")
		e.line("from fan.%s.%s import %s", pod, im.direct[k], im.direct[k])
	}

	pods := make([]string, 0, len(im.podNS))
	for p := range im.podNS {
		pods = append(pods, p)
	}
	sort.Strings(pods)
	for _, p := range pods {
		e.line("from fan import %s", p)
	}
	e.blank()
}

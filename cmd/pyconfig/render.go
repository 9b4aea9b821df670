package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/resource"
	"github.com/wippyai/pyembed/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	ownerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type row struct {
	name  string
	value string
	owner string
}

// rows lists every PyConfig field in C declaration order.
func rows(nc *runtime.NativeConfig) []row {
	raw := reflect.ValueOf(nc.Raw()).Elem()
	fields := abi.ConfigFields()
	out := make([]row, 0, len(fields))

	for _, f := range fields {
		r := row{name: f.Name}
		v := raw.FieldByName(f.GoName)

		switch f.Kind {
		case abi.KindInt, abi.KindSSize:
			r.value = strconv.FormatInt(v.Int(), 10)
		case abi.KindULong:
			r.value = strconv.FormatUint(v.Uint(), 10)
		case abi.KindPointer:
			p, _ := v.Interface().(*abi.WChar)
			if p == nil {
				r.value = "NULL"
			} else {
				r.value = strconv.Quote(abi.GoWideString(p))
			}
		case abi.KindWideList:
			l := v.Interface().(abi.WideStringList)
			quoted := make([]string, 0, l.Length)
			for _, s := range l.Strings() {
				quoted = append(quoted, strconv.Quote(s))
			}
			r.value = "[" + strings.Join(quoted, ", ") + "]"
		}

		if owner, ok := nc.Owner(f.Name); ok && owner == resource.OwnerRuntime {
			r.owner = owner.String()
		}
		out = append(out, r)
	}
	return out
}

func render(source string, nc *runtime.NativeConfig, styled bool) string {
	rs := rows(nc)
	width := 0
	for _, r := range rs {
		width = max(width, len(r.name))
	}

	var b strings.Builder
	title := fmt.Sprintf("PyConfig %s (engine: %s)", source, nc.Engine().Name())
	if styled {
		b.WriteString(titleStyle.Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n\n")

	for _, r := range rs {
		name := fmt.Sprintf("%-*s", width, r.name)
		owner := ""
		if r.owner != "" {
			owner = "  (" + r.owner + ")"
		}
		if styled {
			name = nameStyle.Render(name)
			r.value = valueStyle.Render(r.value)
			owner = ownerStyle.Render(owner)
		}
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString("  ")
		b.WriteString(r.value)
		b.WriteString(owner)
		b.WriteByte('\n')
	}
	return b.String()
}

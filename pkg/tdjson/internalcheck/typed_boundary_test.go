package internalcheck

import (
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// typedFiles implement the typed layer of pkg/tdjson.
var typedFiles = map[string]bool{
	"typed.go":    true,
	"registry.go": true,
}

func TestTypedLayerDoesNotTouchNative(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/tdjson")
	if err != nil {
		t.Fatalf("load package: %v", err)
	}

	var findings []string
	checked := 0

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			name := filepath.Base(pkg.Fset.Position(file.Pos()).Filename)
			if !typedFiles[name] {
				continue
			}
			checked++

			ast.Inspect(file, func(n ast.Node) bool {
				switch n := n.(type) {
				case *ast.SelectorExpr:
					sel := pkg.TypesInfo.Selections[n]
					if sel == nil {
						return true
					}
					if reason := forbiddenSelection(sel); reason != "" {
						findings = append(findings, fmt.Sprintf("%s: %s", pkg.Fset.Position(n.Pos()), reason))
					}
				case *ast.Ident:
					if tn, ok := pkg.TypesInfo.Uses[n].(*types.TypeName); ok && isNativeSide(tn.Name()) {
						findings = append(findings, fmt.Sprintf("%s: uses type %s", pkg.Fset.Position(n.Pos()), tn.Name()))
					}
				}
				return true
			})
		}
	}

	if checked != len(typedFiles) {
		t.Fatalf("checked %d typed files, want %d", checked, len(typedFiles))
	}
	if len(findings) > 0 {
		t.Fatalf("typed layer reaches the native client directly:\n%s", strings.Join(findings, "\n"))
	}
}

func forbiddenSelection(sel *types.Selection) string {
	obj := sel.Obj()
	if v, ok := obj.(*types.Var); ok && v.IsField() && obj.Name() == "native" {
		return "selects the native field"
	}
	if named := receiverName(sel.Recv()); isNativeSide(named) {
		return fmt.Sprintf("selects %s.%s", named, obj.Name())
	}
	return ""
}

func receiverName(t types.Type) string {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

func isNativeSide(name string) bool {
	return name == "handle" || name == "Native" || name == "NativeFactory"
}

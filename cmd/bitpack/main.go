// Command bitpack packs and unpacks bit-field buffers described by TOML
// layout files. It is a development companion to the bitpack library; the
// library itself performs no I/O.
package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-faster/jx"

	"bitpack"
	"bitpack/layout"
	"bitpack/log"
)

const version = "0.3.0"

type CLI struct {
	Pack    PackCmd    `cmd:"" help:"Pack field values into a hex buffer."`
	Unpack  UnpackCmd  `cmd:"" help:"Unpack a hex buffer into field values."`
	Version VersionCmd `cmd:"" help:"Show bitpack version."`

	Log string `help:"Enable debug logging for the given modules." placeholder:"mod0,mod1,..."`
}

type PackCmd struct {
	Layout string   `name:"layout" short:"l" required:"" type:"existingfile" help:"TOML layout file."`
	JSON   bool     `name:"json" help:"Emit JSON instead of plain hex."`
	Values []string `arg:"" name:"name=value" help:"Field values, one per field."`
}

func (p *PackCmd) Run() error {
	lay, err := layout.Load(p.Layout)
	if err != nil {
		return err
	}

	values := make(map[string]int64, len(p.Values))
	for _, kv := range p.Values {
		name, val, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("malformed value %q, want name=value", kv)
		}
		n, err := strconv.ParseInt(val, 0, 64)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		values[name] = n
	}

	buf := make([]byte, lay.ByteSize())
	if err := lay.Pack(bitpack.Default(), buf, values); err != nil {
		return err
	}

	if p.JSON {
		var e jx.Encoder
		e.ObjStart()
		e.FieldStart("layout")
		e.Str(lay.Name)
		e.FieldStart("bits")
		e.Int(int(lay.BitSize()))
		e.FieldStart("data")
		e.Str(hex.EncodeToString(buf))
		e.ObjEnd()
		fmt.Println(e.String())
		return nil
	}
	fmt.Println(hex.EncodeToString(buf))
	return nil
}

type UnpackCmd struct {
	Layout string `name:"layout" short:"l" required:"" type:"existingfile" help:"TOML layout file."`
	JSON   bool   `name:"json" help:"Emit JSON instead of name = value lines."`
	Hex    string `arg:"" name:"hex" help:"Packed buffer as hex."`
}

func (u *UnpackCmd) Run() error {
	lay, err := layout.Load(u.Layout)
	if err != nil {
		return err
	}

	buf, err := hex.DecodeString(u.Hex)
	if err != nil {
		return fmt.Errorf("malformed hex input: %w", err)
	}

	values, err := lay.Unpack(bitpack.Default(), buf)
	if err != nil {
		return err
	}

	if u.JSON {
		var e jx.Encoder
		e.ObjStart()
		for _, f := range lay.Fields {
			e.FieldStart(f.Name)
			e.Int64(values[f.Name])
		}
		e.ObjEnd()
		fmt.Println(e.String())
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %d\n", name, values[name])
	}
	return nil
}

type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println("bitpack", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bitpack"),
		kong.Description("Pack and unpack bit-field buffers described by TOML layouts."),
		kong.UsageOnError(),
	)

	if cli.Log != "" {
		var mask log.ModuleMask
		for _, modname := range strings.Split(cli.Log, ",") {
			if modname == "all" {
				mask |= log.ModuleMaskAll
			} else if m, found := log.ModuleByName(modname); found {
				mask |= m.Mask()
			} else {
				ctx.Fatalf("invalid module name %q", modname)
			}
		}
		log.EnableDebugModules(mask)
	}

	ctx.FatalIfErrorf(ctx.Run())
}

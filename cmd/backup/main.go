// backup exporta o importa el documento de la tienda sobre el almacenamiento configurado
// (STORAGE_DRIVER), sin levantar el servidor HTTP.
//
// Uso:
//
//	go run ./cmd/backup export [tipo] [directorio]   tipo: products|categories|sales|users|full_backup (por defecto full_backup)
//	go run ./cmd/backup import <archivo.json> [tipo] tipo: auto|products|categories|sales|users|full (por defecto auto)
//	go run ./cmd/backup info
//
// Los archivos que no son UTF-8 válido se leen como Windows-1252 (exportaciones editadas a mano).
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/storage"
	"github.com/jhoicas/salmichou-pos/pkg/config"
	"github.com/jhoicas/salmichou-pos/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fail("Cargar configuración", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Output: os.Stderr})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"), storage.Options{})
	if err != nil {
		fail("Abrir almacenamiento", err)
	}
	defer backend.Close()

	st := store.New(backend.Gateway, log.Component("store"))
	if err := st.Open(ctx); err != nil {
		fail("Cargar documento", err)
	}
	manager := exchange.NewManager(st, log.Component("exchange"), time.Now)

	switch os.Args[1] {
	case "export":
		runExport(manager, arg(2, exchange.TypeFullBackup), arg(3, cfg.Storage.BackupDir))
	case "import":
		if len(os.Args) < 3 {
			usage()
		}
		runImport(ctx, manager, os.Args[2], arg(3, exchange.ImportAuto))
	case "info":
		runInfo(st)
	default:
		usage()
	}
}

func runExport(m *exchange.Manager, typ, dir string) {
	raw, name, err := m.Export(typ)
	if err != nil {
		fail("Exportar", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fail("Crear directorio", err)
	}
	outPath := filepath.Join(dir, name)
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		fail("Escribir archivo", err)
	}
	fmt.Printf("Exportado %s (%s)\n", outPath, humanize.Bytes(uint64(len(raw))))
}

func runImport(ctx context.Context, m *exchange.Manager, path, typ string) {
	raw, err := readUTF8(path)
	if err != nil {
		fail("Leer archivo", err)
	}
	res, err := m.Import(ctx, raw, typ)
	if err != nil {
		fail("Importar", err)
	}
	fmt.Printf("%s (%s leídos)\n", res.Message, humanize.Bytes(uint64(len(raw))))
	for name, n := range res.Counts {
		fmt.Printf("  %-12s %s\n", name, humanize.Comma(int64(n)))
	}
}

func runInfo(st *store.Store) {
	doc, err := st.Snapshot()
	if err != nil {
		fail("Leer documento", err)
	}
	fmt.Printf("Último guardado: %s (%s)\n", doc.LastSave.Local().Format(time.DateTime), humanize.Time(doc.LastSave))
	fmt.Printf("  users        %s\n", humanize.Comma(int64(len(doc.Users))))
	fmt.Printf("  products     %s\n", humanize.Comma(int64(len(doc.Products))))
	fmt.Printf("  categories   %s\n", humanize.Comma(int64(len(doc.Categories))))
	fmt.Printf("  sales        %s\n", humanize.Comma(int64(len(doc.Sales))))
}

// readUTF8 lee el archivo y, si no es UTF-8 válido, lo decodifica como Windows-1252.
func readUTF8(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if utf8.Valid(raw) {
		return raw, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()))
}

func arg(i int, def string) string {
	if len(os.Args) > i && os.Args[i] != "" {
		return os.Args[i]
	}
	return def
}

func usage() {
	fmt.Fprintln(os.Stderr, "Uso: backup export [tipo] [directorio] | backup import <archivo.json> [tipo] | backup info")
	os.Exit(2)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}

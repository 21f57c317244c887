package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ivlev/keypoly/internal/config"
	"github.com/ivlev/keypoly/internal/document"
	"github.com/ivlev/keypoly/internal/export"
	"github.com/ivlev/keypoly/internal/interp"
	"github.com/ivlev/keypoly/internal/keyframe"
	"github.com/ivlev/keypoly/internal/region"
	"github.com/ivlev/keypoly/internal/system"
)

// App runs one CLI command against a document.
type App struct {
	Config *config.Config
	Params config.EditParams
	From   int
	To     *int // nil means the last frame of the video
	Video  string
	FPS    float64
	Out    io.Writer
	Stats  system.RunStats

	docPath string
	doc     *document.Document
	ease    interp.Easing
}

func (a *App) Run(command string) error {
	ease, err := interp.ParseEasing(a.Config.Easing)
	if err != nil {
		return err
	}
	a.ease = ease

	if command == "new" {
		return a.runNew()
	}

	if err := a.loadDocument(); err != nil {
		return err
	}

	switch command {
	case "show":
		return a.runShow()
	case "set", "add-point", "remove-point", "insert-point":
		return a.runEdit(command)
	case "export":
		return a.runExport()
	case "validate":
		return a.runValidate()
	case "convert":
		return a.runConvert()
	default:
		return fmt.Errorf("неизвестная команда: %s", command)
	}
}

func (a *App) loadDocument() error {
	path := a.Config.DocumentPath
	if path == "" {
		latest, err := document.FindLatest(a.Config.InputDir)
		if err != nil {
			return fmt.Errorf("%w. Положите документ в %s/", err, a.Config.InputDir)
		}
		path = latest
		fmt.Fprintf(a.Out, "[*] Выбран документ: %s\n", path)
	}

	doc, err := document.Read(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения документа: %w", err)
	}

	a.docPath = path
	a.doc = doc
	a.Stats.Document = path
	a.Stats.Regions = len(doc.Regions)
	for _, rec := range doc.Regions {
		a.Stats.Keyframes += len(rec.Sequence)
	}
	return nil
}

func (a *App) runNew() error {
	path := a.Config.DocumentPath
	if path == "" {
		return fmt.Errorf("укажите путь к новому документу через -doc")
	}
	if err := system.EnsureDirs(filepath.Dir(path)); err != nil {
		return err
	}

	doc := document.New(a.Video, a.FPS)
	if err := document.Write(doc, path); err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "[+++] Документ создан: %s\n", path)
	return nil
}

// region returns the addressed region, creating an empty polygon when the
// document does not have it yet.
func (a *App) region(create bool) (*region.Region, error) {
	id := a.Params.RegionID
	if id == "" {
		return nil, fmt.Errorf("не указан регион (-region)")
	}

	r, err := a.doc.Region(id)
	if err == nil {
		return r, nil
	}
	if !create {
		return nil, err
	}

	fmt.Fprintf(a.Out, "[*] Новый регион: %s\n", id)
	return region.New(region.KindVideoPolygon, id)
}

func (a *App) runShow() error {
	r, err := a.region(false)
	if err != nil {
		return err
	}
	r.Easing = a.ease

	shape, ok := r.GetShapeAtFrame(a.Params.Frame)
	if !ok {
		fmt.Fprintf(a.Out, "[*] Регион %s отсутствует на кадре %d\n", r.ID, a.Params.Frame)
		return nil
	}

	fmt.Fprintf(a.Out, "Регион: %s | Кадр: %d | Поворот: %g | Активен: %v\n",
		r.ID, a.Params.Frame, shape.Rotation, shape.Enabled)
	for i, p := range shape.Points {
		fmt.Fprintf(a.Out, "  [%d] %g, %g\n", i, p[0], p[1])
	}
	return nil
}

func (a *App) runEdit(command string) error {
	r, err := a.region(command == "set" || command == "add-point")
	if err != nil {
		return err
	}
	r.Easing = a.ease

	p := a.Params
	pt := keyframe.Point{p.X, p.Y}

	var changed bool
	switch command {
	case "set":
		patch, err := parsePatch(p.Points, p.Rotation)
		if err != nil {
			return err
		}
		changed = r.UpdateShape(patch, p.Frame)
	case "add-point":
		changed = r.AddPoint(pt, p.Frame)
	case "remove-point":
		changed = r.RemovePoint(p.Index, p.Frame)
	case "insert-point":
		changed = r.InsertPoint(p.Index, pt, p.Frame)
	}

	if !changed {
		fmt.Fprintf(a.Out, "[*] Без изменений: регион %s, кадр %d\n", r.ID, p.Frame)
		return nil
	}

	for _, m := range r.Mismatches() {
		log.Printf("[!] Регион %s: кадры %d (%d точек) и %d (%d точек) не интерполируются",
			r.ID, m.From, m.FromLen, m.To, m.ToLen)
	}

	a.doc.Put(r)
	if err := document.Write(a.doc, a.docPath); err != nil {
		return fmt.Errorf("ошибка сохранения документа: %w", err)
	}

	fmt.Fprintf(a.Out, "[+++] Регион %s обновлен на кадре %d (ключевых кадров: %d, версия %d)\n",
		r.ID, p.Frame, r.Len(), r.Version())
	return nil
}

func (a *App) runExport() error {
	to := a.doc.Video.FrameCount - 1
	if a.To != nil {
		to = *a.To
	}
	if to < a.From {
		to = a.From
	}

	samples, err := export.Track(context.Background(), a.doc, a.From, to, a.Config.Workers, a.ease)
	if err != nil {
		return err
	}
	a.Stats.Samples = len(samples)

	output := a.Config.OutputPath
	if output == "" {
		if err := system.EnsureDirs(a.Config.OutputDir); err != nil {
			return err
		}
		output = system.OutputPath(a.Config.OutputDir, a.docPath, "track", "yaml")
	}

	if err := export.WriteTrack(samples, output); err != nil {
		return fmt.Errorf("ошибка записи трека: %w", err)
	}

	fmt.Fprintf(a.Out, "[+++] Успех! Кадров %d..%d, записей %d: %s\n", a.From, to, len(samples), output)
	return nil
}

func (a *App) runValidate() error {
	problems := 0
	for _, rec := range a.doc.Regions {
		// Loading re-sorts the timeline, so order is checked on the raw record
		if !sorted(rec.Sequence) {
			log.Printf("[!] Регион %s: кадры в файле не упорядочены или повторяются", rec.ID)
			problems++
		}

		r, err := rec.Region()
		if err != nil {
			log.Printf("[!] %v", err)
			problems++
			continue
		}

		fmt.Fprintf(a.Out, "[*] Регион %s: ключевых кадров %d\n", r.ID, r.Len())
		for _, m := range r.Mismatches() {
			log.Printf("[!] Регион %s: кадры %d (%d точек) и %d (%d точек) не интерполируются, держим кадр %d",
				r.ID, m.From, m.FromLen, m.To, m.ToLen, m.From)
			problems++
		}
	}

	if problems > 0 {
		return fmt.Errorf("найдено проблем: %d", problems)
	}
	fmt.Fprintln(a.Out, "[+++] Документ корректен")
	return nil
}

func (a *App) runConvert() error {
	output := a.Config.OutputPath
	if output == "" {
		return fmt.Errorf("укажите путь результата через -output")
	}

	if err := document.Write(a.doc, output); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "[+++] Документ сохранен: %s\n", output)
	return nil
}

func sorted(kfs []keyframe.Keyframe) bool {
	for i := 1; i < len(kfs); i++ {
		if kfs[i].Frame <= kfs[i-1].Frame {
			return false
		}
	}
	return true
}

// parsePatch builds a patch from the -points and -rotation flags. Empty
// values leave the field untouched.
func parsePatch(points, rotation string) (region.Patch, error) {
	var patch region.Patch

	if points != "" {
		pts, err := parsePoints(points)
		if err != nil {
			return patch, err
		}
		patch.Points = pts
	}

	if rotation != "" {
		r, err := strconv.ParseFloat(rotation, 64)
		if err != nil {
			return patch, fmt.Errorf("неверный поворот %q: %w", rotation, err)
		}
		patch.Rotation = region.Rotation(r)
	}

	return patch, nil
}

func parsePoints(s string) ([]keyframe.Point, error) {
	var out []keyframe.Point
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("неверная точка %q: ожидается x,y", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("неверная точка %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("неверная точка %q: %w", pair, err)
		}
		out = append(out, keyframe.Point{x, y})
	}
	if out == nil {
		out = []keyframe.Point{}
	}
	return out, nil
}

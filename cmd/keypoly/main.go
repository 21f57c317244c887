package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ivlev/keypoly/internal/config"
	"github.com/ivlev/keypoly/internal/system"
)

var buildVersion = "dev"

const usage = `Использование: keypoly <команда> [флаги]

Команды:
  new           создать пустой документ
  show          форма региона на кадре
  set           записать точки/поворот как ключевой кадр
  add-point     добавить точку в конец полигона
  remove-point  удалить точку по индексу
  insert-point  вставить точку по индексу
  export        рассчитать формы всех регионов по диапазону кадров
  validate      проверить ключевые кадры
  convert       сохранить документ в другом формате (yaml, json, cbor)
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		fmt.Print(usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPtr := fs.String("config", config.DefaultFile, "Файл настроек TOML")
	docPtr := fs.String("doc", "", "Путь к документу (по умолчанию: самый свежий файл в input/)")
	outputPtr := fs.String("output", "", "Куда сохранить результат (если пусто, генерируется автоматически в output/)")
	regionPtr := fs.String("region", "", "ID региона")
	framePtr := fs.Int("frame", 0, "Кадр")
	indexPtr := fs.Int("index", 0, "Индекс точки")
	xPtr := fs.Float64("x", 0, "X точки")
	yPtr := fs.Float64("y", 0, "Y точки")
	pointsPtr := fs.String("points", "", "Точки полигона: x1,y1;x2,y2;...")
	rotationPtr := fs.String("rotation", "", "Поворот в градусах (если пусто, не меняется)")
	fromPtr := fs.Int("from", 0, "Первый кадр экспорта")
	toPtr := fs.Int("to", 0, "Последний кадр экспорта (если не задан, последний кадр видео)")
	workersPtr := fs.Int("workers", 0, "Потоки (0 - из настроек)")
	easingPtr := fs.String("easing", "", "Интерполяция: linear, cubic")
	videoPtr := fs.String("video", "", "Имя видео для нового документа")
	fpsPtr := fs.Float64("fps", 25, "FPS видео для нового документа")
	statsPtr := fs.Bool("stats", false, "Показать отчет о производительности")

	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка настроек: %v", err)
	}
	cfg.BuildVersion = buildVersion

	params := config.EditParams{
		RegionID: *regionPtr,
		Frame:    *framePtr,
		Index:    *indexPtr,
		X:        *xPtr,
		Y:        *yPtr,
		Points:   *pointsPtr,
		Rotation: *rotationPtr,
	}

	app := &App{
		Config: &cfg,
		Params: params,
		From:   *fromPtr,
		Video:  *videoPtr,
		FPS:    *fpsPtr,
		Out:    os.Stdout,
		Stats:  system.RunStats{BuildVersion: buildVersion, Command: command, Start: time.Now()},
	}

	// Флаги командной строки важнее файла настроек
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "doc":
			cfg.DocumentPath = *docPtr
		case "output":
			cfg.OutputPath = *outputPtr
		case "workers":
			if *workersPtr > 0 {
				cfg.Workers = *workersPtr
			}
		case "easing":
			cfg.Easing = *easingPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "to":
			to := *toPtr
			app.To = &to
		}
	})

	if err := app.Run(command); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	if cfg.ShowStats {
		system.Report(os.Stdout, app.Stats)
		if err := system.AppendLog("benchmark.log", app.Stats); err != nil {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}
}

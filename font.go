package main

import (
	"bytes"
	"log"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	bodyFace   text.Face
	smallFace  text.Face
	bubbleFont text.Face
	titleFace  text.Face
	damageFace text.Face
)

func initFont() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	bodyFace = &text.GoTextFace{Source: regular, Size: 15}
	smallFace = &text.GoTextFace{Source: regular, Size: 11}
	bubbleFont = &text.GoTextFace{Source: regular, Size: 12}
	titleFace = &text.GoTextFace{Source: bold, Size: 30}
	damageFace = &text.GoTextFace{Source: bold, Size: 22}
}

package extractor

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Word-processing (.docx) and slide-deck (.pptx) documents are OOXML: a zip
// archive of XML parts. No pack library covers OOXML text extraction, and
// the format is simple enough that stdlib archive/zip + encoding/xml is the
// right tool rather than a gap (see DESIGN.md).

type wordBody struct {
	XMLName xml.Name   `xml:"document"`
	Paras   []wordPara `xml:"body>p"`
}

type wordPara struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text string `xml:"t"`
}

// extractDocx concatenates the paragraph text of a .docx archive.
func extractDocx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var data []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", openErr
			}
			data, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if data == nil {
		return "", fmt.Errorf("word/document.xml not found in %s", path)
	}

	var doc wordBody
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, p := range doc.Paras {
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type slideBody struct {
	XMLName xml.Name    `xml:"sld"`
	Shapes  []slideText `xml:"cSld>spTree>sp>txBody>p"`
}

type slideText struct {
	Runs []slideRun `xml:"r"`
}

type slideRun struct {
	Text string `xml:"t"`
}

// extractPptx concatenates per-slide shape text, each slide prefixed with a
// marker. Slides found under ppt/slides/ are ordered by a plain string sort
// of their entry names, so slide10.xml comes before slide2.xml.
func extractPptx(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var slides []slideFile
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", openErr
			}
			data, readErr := io.ReadAll(rc)
			rc.Close()
			if readErr != nil {
				return "", readErr
			}
			slides = append(slides, slideFile{name: f.Name, data: data})
		}
	}
	sortSlidesByName(slides)

	var sb strings.Builder
	for i, s := range slides {
		var body slideBody
		if err := xml.Unmarshal(s.data, &body); err != nil {
			continue
		}
		fmt.Fprintf(&sb, "--- slide %d ---\n", i+1)
		for _, p := range body.Shapes {
			for _, r := range p.Runs {
				sb.WriteString(r.Text)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

type slideFile struct {
	name string
	data []byte
}

func sortSlidesByName(slides []slideFile) {
	sort.Slice(slides, func(i, j int) bool { return slides[i].name < slides[j].name })
}

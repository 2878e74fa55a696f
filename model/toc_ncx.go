package model

import "encoding/xml"

const NamespaceNCX = "http://www.daisy.org/z3986/2005/ncx/"

// TocNCX is the root of OEBPS/toc.ncx.
type TocNCX struct {
	XMLName  xml.Name   `xml:"ncx"`
	Xmlns    string     `xml:"xmlns,attr"`
	Version  string     `xml:"version,attr"`
	Head     TocNCXHead `xml:"head"`
	DocTitle string     `xml:"docTitle>text"`
	NavMap   NavMap     `xml:"navMap"`
}

func (t *TocNCX) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(xmlBytes), nil
}

type TocNCXHead struct {
	Meta []TocNCXHeadMeta `xml:"meta"`
}

type TocNCXHeadMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type NavPoint struct {
	Id        string          `xml:"id,attr"`
	PlayOrder int             `xml:"playOrder,attr"`
	Label     string          `xml:"navLabel>text"`
	Content   NavPointContent `xml:"content"`
	NavPoints []*NavPoint     `xml:"navPoint"`
}

type NavPointContent struct {
	Src string `xml:"src,attr"`
}

type NavMap struct {
	Points []*NavPoint `xml:"navPoint"`
}

package model

import "encoding/xml"

const (
	NamespaceOPF = "http://www.idpf.org/2007/opf"
	NamespaceDC  = "http://purl.org/dc/elements/1.1/"
)

// PackageDocument is the root of OEBPS/content.opf.
type PackageDocument struct {
	XMLName          xml.Name           `xml:"package"`
	Version          string             `xml:"version,attr"`
	Xmlns            string             `xml:"xmlns,attr"`
	UniqueIdentifier string             `xml:"unique-identifier,attr"`
	Metadata         DublinCoreMetadata `xml:"metadata"`
	Manifest         Manifest
	Spine            Spine
	Guide            *Guide
}

func (p *PackageDocument) Marshal() (string, error) {
	xmlBytes, err := xml.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(xmlBytes), nil
}

type DublinCoreMetadata struct {
	XMLName  xml.Name `xml:"metadata"`
	XmlnsDC  string   `xml:"xmlns:dc,attr"`
	XmlnsOPF string   `xml:"xmlns:opf,attr"`

	// 必需元素
	Identifiers []DCIdentifier `xml:"dc:identifier"`
	Titles      []DCTitle      `xml:"dc:title"`
	Languages   []DCLanguage   `xml:"dc:language"`

	// 可选元素
	Creators     []DCCreator     `xml:"dc:creator"`
	Contributors []DCContributor `xml:"dc:contributor"`
	Subjects     []DCSubject     `xml:"dc:subject"`
	Descriptions []DCDescription `xml:"dc:description"`
	Publishers   []DCPublisher   `xml:"dc:publisher"`
	Dates        []DCDate        `xml:"dc:date"`

	Metas []DublinCoreMeta `xml:"meta"`
}

// DCTitle 表示 <dc:title>
type DCTitle struct {
	Value string `xml:",chardata"`
}

// DCIdentifier 表示 <dc:identifier>
type DCIdentifier struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr,omitempty"`
	Scheme string `xml:"opf:scheme,attr,omitempty"`
}

// DCLanguage 表示 <dc:language>
type DCLanguage struct {
	Value string `xml:",chardata"`
}

// DCCreator 表示 <dc:creator>
type DCCreator struct {
	Value string `xml:",chardata"`
	Role  string `xml:"opf:role,attr,omitempty"` // aut
}

// DCContributor 表示 <dc:contributor>
type DCContributor struct {
	Value string `xml:",chardata"`
	Role  string `xml:"opf:role,attr,omitempty"` // ill
}

// DCSubject 表示 <dc:subject>
type DCSubject struct {
	Value string `xml:",chardata"`
}

// DCDescription 表示 <dc:description>
type DCDescription struct {
	Value string `xml:",chardata"`
}

// DCPublisher 表示 <dc:publisher>
type DCPublisher struct {
	Value string `xml:",chardata"`
}

// DCDate 表示 <dc:date>
type DCDate struct {
	Value string `xml:",chardata"`
}

// DublinCoreMeta 表示 OPF 2.0 的 <meta name="" content=""/>
type DublinCoreMeta struct {
	Name    string `xml:"name,attr,omitempty"`
	Content string `xml:"content,attr,omitempty"`
}

type Manifest struct {
	XMLName xml.Name       `xml:"manifest"`
	Items   []ManifestItem `xml:"item"`
}

type ManifestItem struct {
	ID    string `xml:"id,attr"`
	Link  string `xml:"href,attr"`
	Media string `xml:"media-type,attr"`
}

type Spine struct {
	XMLName xml.Name    `xml:"spine"`
	Toc     string      `xml:"toc,attr,omitempty"`
	Items   []SpineItem `xml:"itemref"`
}

type SpineItem struct {
	IDref string `xml:"idref,attr"`
}

type Guide struct {
	XMLName xml.Name    `xml:"guide"`
	Items   []GuideItem `xml:"reference"`
}

type GuideItem struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
	Link  string `xml:"href,attr"`
}

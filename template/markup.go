package template

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

const xhtmlPrologue = xmlDeclaration +
	`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">` + "\n"

const contentTypeMeta = `<meta http-equiv="Content-Type" content="text/html; charset=UTF-8"/>`

// templ writes void elements in HTML form, XHTML readers need them closed.

func stylesheetLink(href string) string {
	return `<link rel="stylesheet" type="text/css" href="` + templ.EscapeString(href) + `"/>`
}

func imageTag(src, alt string) string {
	return `<img src="` + templ.EscapeString(src) + `" alt="` + templ.EscapeString(alt) + `"/>`
}

// marshalled emits an already serialized XML document.
func marshalled(content string, err error) templ.Component {
	if err != nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return err
		})
	}
	return templ.Raw(content)
}

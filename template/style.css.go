package template

const StyleCSS = `
body > div {
  margin: 0 auto;
  padding: 20px;
  box-sizing: border-box;
  line-height: 1.6;
  text-align: justify;
}

h1 {
  text-align: center;
  font-size: 1.5em;
  margin: 2em auto;
  font-weight: bold;
}

p {
  text-indent: 2em;
  margin: 0.8em 0;
}

div.volume-cover {
  text-align: center;
}

div.volume-cover img {
  max-width: 100%;
  height: auto;
}

img {
  max-width: 80%;
  height: auto;
  display: block;
  margin-left: auto !important;
  margin-right: auto !important;
  margin-top: 1em;
  margin-bottom: 1em;
}
`

package translators

type Translator interface {
	Translate(text string) (string, error)
}

type chain []Translator

// Chain feeds the output of each translator into the next.
func Chain(translators ...Translator) Translator {
	return chain(translators)
}

func (c chain) Translate(text string) (string, error) {
	var err error
	for _, t := range c {
		if text, err = t.Translate(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

package lexer

import (
	"testing"
)

// Realistic Portugol samples of varying complexity
var (
	simpleCode = `saida <- n1 / n2`

	mediumCode = `
algoritmo media
var n1, n2, media: real
inicio
	leia(n1)
	leia(n2)
	media <- (n1 + n2) / 2
	escreva("Média: ", media)
fim
`

	complexCode = `
algoritmo calculadora
var n1, n2, saida: real
    opcao: caractere
inicio
	repita
		escreva("Operação: ")
		leia(opcao)
		caso "/"
			se n2 = 0 entao // verifica divisão por zero
				escreva("Erro! Divisão por zero")
			senao
				saida <- n1 / n2
			fim
	ate opcao = "s"
fim
`
)

func BenchmarkScanner_Simple(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := New(simpleCode)
		for tok, _ := s.NextToken(); tok.Category != EOF; tok, _ = s.NextToken() {
		}
	}
}

func BenchmarkScanner_Medium(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := New(mediumCode)
		for tok, _ := s.NextToken(); tok.Category != EOF; tok, _ = s.NextToken() {
		}
	}
}

func BenchmarkScanner_Complex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := New(complexCode)
		for tok, _ := s.NextToken(); tok.Category != EOF; tok, _ = s.NextToken() {
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Normalize(complexCode)
	}
}

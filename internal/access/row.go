package access

import "strings"

// Columns is the persisted column set: the 18 positional export columns in
// device order, followed by the derived bucketing columns.
var Columns = []string{
	"Usuario", "Credencial", "Codigo Cartao", "Nome Ponto de Acesso",
	"Dispositivo", "Data", "Detalhe", "Observacoes", "RG", "CPF",
	"Matricula", "Departamento", "Placa", "Modelo", "Cor", "Marca",
	"Status", "Sentido",
	"Mes", "Dia", "Dia da Semana",
}

// timestampCol is the position of the Data column in the export schema.
const timestampCol = 5

// FromRow binds a delimited row to a Record by position. Short rows leave
// the trailing fields empty; the timestamp is not parsed here.
func FromRow(row []string) Record {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return Record{
		Usuario:      get(0),
		Credencial:   get(1),
		CodigoCartao: get(2),
		PontoAcesso:  get(3),
		Dispositivo:  get(4),
		Data:         get(5),
		Detalhe:      get(6),
		Observacoes:  get(7),
		RG:           get(8),
		CPF:          get(9),
		Matricula:    get(10),
		Departamento: get(11),
		Placa:        get(12),
		Modelo:       get(13),
		Cor:          get(14),
		Marca:        get(15),
		Status:       get(16),
		Sentido:      get(17),
	}
}

// Row returns the record in persisted column order, matching Columns.
func (r Record) Row() []string {
	return []string{
		r.Usuario, r.Credencial, r.CodigoCartao, r.PontoAcesso,
		r.Dispositivo, r.Data, r.Detalhe, r.Observacoes, r.RG, r.CPF,
		r.Matricula, r.Departamento, r.Placa, r.Modelo, r.Cor, r.Marca,
		r.Status, r.Sentido,
		r.Month, r.Day, r.Weekday,
	}
}

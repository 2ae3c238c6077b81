package catalog

// Field groups.
const (
	GroupIdentification = "Identificação"
	GroupContact        = "Contato"
	GroupContract       = "Contrato"
	GroupBank           = "Dados bancários"
	GroupCustom         = "Personalizados"
)

// Core field ids referenced by inference rules and calculated fields.
const (
	FieldCPF            = "cpf"
	FieldCNPJ           = "cnpj"
	FieldRG             = "rg"
	FieldName           = "nome"
	FieldRegistration   = "matricula"
	FieldBirthDate      = "data_nascimento"
	FieldGender         = "sexo"
	FieldEmail          = "email"
	FieldPhone          = "telefone"
	FieldAddress        = "endereco"
	FieldCity           = "cidade"
	FieldState          = "uf"
	FieldZip            = "cep"
	FieldContract       = "contrato"
	FieldAgency         = "orgao"
	FieldStartDate      = "data_inicio"
	FieldTerm           = "prazo"
	FieldInstallmentsPd = "parcelas_pagas"
	FieldInstallment    = "valor_parcela"
	FieldReleasedValue  = "valor_liberado"
	FieldMargin         = "margem"
	FieldRealizedValue  = "valor_realizado"
	FieldPeriod         = "periodo"
	FieldBank           = "banco"
	FieldBranch         = "agencia"
	FieldAccount        = "conta"
)

var coreFields = []Field{
	{ID: FieldCPF, Name: "CPF", Group: GroupIdentification, Comment: "Cadastro de Pessoa Física, 11 dígitos"},
	{ID: FieldCNPJ, Name: "CNPJ", Group: GroupIdentification, Comment: "Cadastro Nacional da Pessoa Jurídica, 14 dígitos"},
	{ID: FieldRG, Name: "RG", Group: GroupIdentification},
	{ID: FieldName, Name: "Nome", Group: GroupIdentification},
	{ID: FieldRegistration, Name: "Matrícula", Group: GroupIdentification},
	{ID: FieldBirthDate, Name: "Data de nascimento", Group: GroupIdentification},
	{ID: FieldGender, Name: "Sexo", Group: GroupIdentification},
	{ID: FieldEmail, Name: "E-mail", Group: GroupContact},
	{ID: FieldPhone, Name: "Telefone", Group: GroupContact},
	{ID: FieldAddress, Name: "Endereço", Group: GroupContact},
	{ID: FieldCity, Name: "Cidade", Group: GroupContact},
	{ID: FieldState, Name: "UF", Group: GroupContact},
	{ID: FieldZip, Name: "CEP", Group: GroupContact},
	{ID: FieldContract, Name: "Contrato", Group: GroupContract},
	{ID: FieldAgency, Name: "Órgão", Group: GroupContract},
	{ID: FieldStartDate, Name: "Data de início", Group: GroupContract},
	{ID: FieldTerm, Name: "Prazo", Group: GroupContract, Comment: "Quantidade total de parcelas"},
	{ID: FieldInstallmentsPd, Name: "Parcelas pagas", Group: GroupContract, Comment: "Usado no cálculo da data de início"},
	{ID: FieldInstallment, Name: "Valor da parcela", Group: GroupContract},
	{ID: FieldReleasedValue, Name: "Valor liberado", Group: GroupContract},
	{ID: FieldMargin, Name: "Margem", Group: GroupContract},
	{ID: FieldRealizedValue, Name: "Valor realizado", Group: GroupContract, Comment: "Usado no cálculo do código de situação"},
	{ID: FieldPeriod, Name: "Período", Group: GroupContract, Comment: "Competência usada no cálculo MMAAAA"},
	{ID: FieldBank, Name: "Banco", Group: GroupBank},
	{ID: FieldBranch, Name: "Agência", Group: GroupBank},
	{ID: FieldAccount, Name: "Conta", Group: GroupBank},
}

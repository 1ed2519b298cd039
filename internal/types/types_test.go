package types

import "testing"

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b, want DataType
	}{
		{Bool, Char, Char},
		{Char, Int, Int},
		{Int, Float, Float},
		{Float, Bool, Float},
		{Int, Int, Int},
	}
	for _, tt := range tests {
		if got := Promote(tt.a, tt.b); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsIntegerType(t *testing.T) {
	for _, ty := range []DataType{Bool, Char, Int} {
		if !IsIntegerType(ty) {
			t.Errorf("IsIntegerType(%s) = false, want true", ty)
		}
	}
	for _, ty := range []DataType{Float, Void, FuncPtr} {
		if IsIntegerType(ty) {
			t.Errorf("IsIntegerType(%s) = true, want false", ty)
		}
	}
}

func TestOperatorPredicates(t *testing.T) {
	if !IsArithmetic(OpAdd) || IsArithmetic(OpBitAnd) {
		t.Errorf("IsArithmetic classification wrong")
	}
	if !IsBitwise(OpShl) || IsBitwise(OpAdd) {
		t.Errorf("IsBitwise classification wrong")
	}
	if !IsLogical(OpLT) || !IsLogical(OpLogicalAnd) || IsLogical(OpAdd) {
		t.Errorf("IsLogical classification wrong")
	}
	if !RequiresLvalue(OpAssign) || !RequiresLvalue(OpPreInc) || RequiresLvalue(OpAdd) {
		t.Errorf("RequiresLvalue classification wrong")
	}
	if !IsIntegerOnly(OpMod) || !IsIntegerOnly(OpBitAnd) || IsIntegerOnly(OpAdd) {
		t.Errorf("IsIntegerOnly classification wrong")
	}
}

func TestDataTypeStringAndTag(t *testing.T) {
	if FuncPtr.String() != "pointer to function" {
		t.Errorf("FuncPtr.String() = %q", FuncPtr.String())
	}
	if Int.QuadTag() != "INT" || Char.QuadTag() != "CHR" || FuncPtr.QuadTag() != "FNCPTR" {
		t.Errorf("unexpected quad tags: INT=%s CHR=%s FNCPTR=%s", Int.QuadTag(), Char.QuadTag(), FuncPtr.QuadTag())
	}
}

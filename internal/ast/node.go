package ast

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

func (s *Script) NodePos() Position    { return s.Pos }
func (s *Script) NodeEndPos() Position { return s.EndPos }
func (*Script) NodeType() NodeType     { return SCRIPT }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (a *Attribute) NodePos() Position    { return a.Pos }
func (a *Attribute) NodeEndPos() Position { return a.EndPos }
func (*Attribute) NodeType() NodeType     { return ATTRIBUTE }

func (v *Variable) NodePos() Position    { return v.Pos }
func (v *Variable) NodeEndPos() Position { return v.EndPos }
func (*Variable) NodeType() NodeType     { return VARIABLE }

func (s *StructDef) NodePos() Position    { return s.Pos }
func (s *StructDef) NodeEndPos() Position { return s.EndPos }
func (*StructDef) NodeType() NodeType     { return STRUCT }

func (f *Field) NodePos() Position    { return f.Pos }
func (f *Field) NodeEndPos() Position { return f.EndPos }
func (*Field) NodeType() NodeType     { return FIELD }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (t *TypeRef) NodePos() Position    { return t.Pos }
func (t *TypeRef) NodeEndPos() Position { return t.EndPos }
func (*TypeRef) NodeType() NodeType     { return TYPE }

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (*Block) NodeType() NodeType     { return BLOCK }

func (v *VarStmt) NodePos() Position    { return v.Pos }
func (v *VarStmt) NodeEndPos() Position { return v.EndPos }
func (*VarStmt) NodeType() NodeType     { return VAR_STMT }

func (a *AssignStmt) NodePos() Position    { return a.Pos }
func (a *AssignStmt) NodeEndPos() Position { return a.EndPos }
func (*AssignStmt) NodeType() NodeType     { return ASSIGN_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (i *IfStmt) NodePos() Position    { return i.Pos }
func (i *IfStmt) NodeEndPos() Position { return i.EndPos }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }

func (f *ForStmt) NodePos() Position    { return f.Pos }
func (f *ForStmt) NodeEndPos() Position { return f.EndPos }
func (*ForStmt) NodeType() NodeType     { return FOR_STMT }

func (w *WhileStmt) NodePos() Position    { return w.Pos }
func (w *WhileStmt) NodeEndPos() Position { return w.EndPos }
func (*WhileStmt) NodeType() NodeType     { return WHILE_STMT }

func (r *ReturnStmt) NodePos() Position    { return r.Pos }
func (r *ReturnStmt) NodeEndPos() Position { return r.EndPos }
func (*ReturnStmt) NodeType() NodeType     { return RETURN_STMT }

func (p *PassStmt) NodePos() Position    { return p.Pos }
func (p *PassStmt) NodeEndPos() Position { return p.EndPos }
func (*PassStmt) NodeType() NodeType     { return PASS_STMT }

func (b *BreakStmt) NodePos() Position    { return b.Pos }
func (b *BreakStmt) NodeEndPos() Position { return b.EndPos }
func (*BreakStmt) NodeType() NodeType     { return BREAK_STMT }

func (c *ContinueStmt) NodePos() Position    { return c.Pos }
func (c *ContinueStmt) NodeEndPos() Position { return c.EndPos }
func (*ContinueStmt) NodeType() NodeType     { return CONTINUE_STMT }

func (l *LiteralExpr) NodePos() Position    { return l.Pos }
func (l *LiteralExpr) NodeEndPos() Position { return l.EndPos }
func (*LiteralExpr) NodeType() NodeType     { return LITERAL_EXPR }

func (i *IdentExpr) NodePos() Position    { return i.Pos }
func (i *IdentExpr) NodeEndPos() Position { return i.EndPos }
func (*IdentExpr) NodeType() NodeType     { return IDENT_EXPR }

func (s *SelfExpr) NodePos() Position    { return s.Pos }
func (s *SelfExpr) NodeEndPos() Position { return s.EndPos }
func (*SelfExpr) NodeType() NodeType     { return SELF_EXPR }

func (s *SuperExpr) NodePos() Position    { return s.Pos }
func (s *SuperExpr) NodeEndPos() Position { return s.EndPos }
func (*SuperExpr) NodeType() NodeType     { return SUPER_EXPR }

func (u *UnaryExpr) NodePos() Position    { return u.Pos }
func (u *UnaryExpr) NodeEndPos() Position { return u.EndPos }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }

func (c *CallExpr) NodePos() Position    { return c.Pos }
func (c *CallExpr) NodeEndPos() Position { return c.EndPos }
func (*CallExpr) NodeType() NodeType     { return CALL_EXPR }

func (m *MemberExpr) NodePos() Position    { return m.Pos }
func (m *MemberExpr) NodeEndPos() Position { return m.EndPos }
func (*MemberExpr) NodeType() NodeType     { return MEMBER_EXPR }

func (n *NodeVarExpr) NodePos() Position    { return n.Pos }
func (n *NodeVarExpr) NodeEndPos() Position { return n.EndPos }
func (*NodeVarExpr) NodeType() NodeType     { return NODE_VAR_EXPR }

func (i *IndexExpr) NodePos() Position    { return i.Pos }
func (i *IndexExpr) NodeEndPos() Position { return i.EndPos }
func (*IndexExpr) NodeType() NodeType     { return INDEX_EXPR }

func (n *NewExpr) NodePos() Position    { return n.Pos }
func (n *NewExpr) NodeEndPos() Position { return n.EndPos }
func (*NewExpr) NodeType() NodeType     { return NEW_EXPR }

func (f *ObjectField) NodePos() Position    { return f.Pos }
func (f *ObjectField) NodeEndPos() Position { return f.EndPos }
func (*ObjectField) NodeType() NodeType     { return OBJECT_FIELD }

func (o *ObjectLiteral) NodePos() Position    { return o.Pos }
func (o *ObjectLiteral) NodeEndPos() Position { return o.EndPos }
func (*ObjectLiteral) NodeType() NodeType     { return OBJECT_LITERAL }

func (a *ArrayLiteral) NodePos() Position    { return a.Pos }
func (a *ArrayLiteral) NodeEndPos() Position { return a.EndPos }
func (*ArrayLiteral) NodeType() NodeType     { return ARRAY_LITERAL }

func (c *CastExpr) NodePos() Position    { return c.Pos }
func (c *CastExpr) NodeEndPos() Position { return c.EndPos }
func (*CastExpr) NodeType() NodeType     { return CAST_EXPR }

func (r *RangeExpr) NodePos() Position    { return r.Pos }
func (r *RangeExpr) NodeEndPos() Position { return r.EndPos }
func (*RangeExpr) NodeType() NodeType     { return RANGE_EXPR }

func (p *ParenExpr) NodePos() Position    { return p.Pos }
func (p *ParenExpr) NodeEndPos() Position { return p.EndPos }
func (*ParenExpr) NodeType() NodeType     { return PAREN_EXPR }

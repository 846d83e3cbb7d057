package mysql

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/schema"
	"github.com/sqlweft/sqlweft/internal/sqltypes"
)

func nullString(s string) *sql.NullString {
	return &sql.NullString{String: s, Valid: true}
}

func TestDescribeRowFromValues(t *testing.T) {
	vals := []*sql.NullString{
		nullString("id"), nullString("int(11)"), nullString("NO"),
		nullString("PRI"), {}, nullString("auto_increment"),
	}

	row, err := describeRowFromValues(vals)
	require.NoError(t, err)
	assert.Equal(t, "id", row.Name)
	assert.Equal(t, "int(11)", row.Type)
	assert.Equal(t, "NO", row.Nullable)
	assert.Equal(t, "PRI", row.Key)
	assert.Nil(t, row.Default)
}

func TestDescribeRowFromValues_TooFewFields(t *testing.T) {
	vals := []*sql.NullString{nullString("id"), nullString("int"), nullString("NO")}

	_, err := describeRowFromValues(vals)
	require.Error(t, err)
	assert.True(t, errs.IsMalformedData(err))
}

func TestParseDescribeRow_PrimaryKeyInteger(t *testing.T) {
	col, err := parseDescribeRow(describeRow{
		Name: "id", Type: "int(11)", Nullable: "NO", Key: "PRI",
	})
	require.NoError(t, err)

	assert.Equal(t, "id", col.Name)
	assert.Equal(t, sqltypes.Integer, col.Type.Kind)
	assert.False(t, col.Nullable)
	assert.True(t, col.PrimaryKey)
	assert.Nil(t, col.Default)
	assert.Nil(t, col.ForeignKey)
}

func TestParseDescribeRow_TypeArguments(t *testing.T) {
	col, err := parseDescribeRow(describeRow{
		Name: "price", Type: "decimal(10,2)", Nullable: "YES",
	})
	require.NoError(t, err)
	assert.Equal(t, sqltypes.Numeric, col.Type.Kind)
	assert.Equal(t, 10, col.Type.Precision)
	assert.Equal(t, 2, col.Type.Scale)
	assert.True(t, col.Nullable)
	assert.False(t, col.PrimaryKey)
}

func TestParseDescribeRow_UnknownTypeFallsBack(t *testing.T) {
	// an unrecognized keyword must not abort the parse
	col, err := parseDescribeRow(describeRow{
		Name: "status", Type: "enum('new','done')", Nullable: "YES",
	})
	require.NoError(t, err)
	assert.Equal(t, sqltypes.Varchar, col.Type.Kind)
}

func TestParseDescribeRow_Default(t *testing.T) {
	def := "0"
	col, err := parseDescribeRow(describeRow{
		Name: "qty", Type: "smallint(6)", Nullable: "NO", Default: &def,
	})
	require.NoError(t, err)
	require.NotNil(t, col.Default)
	assert.Equal(t, "0", *col.Default)
	assert.Equal(t, sqltypes.SmallInteger, col.Type.Kind)
}

const childDDL = "CREATE TABLE `child` (\n" +
	"  `id` int(11) default NULL,\n" +
	"  `parent_id` int(11) default NULL,\n" +
	"  KEY `par_ind` (`parent_id`),\n" +
	"  CONSTRAINT `child_ibfk_1` FOREIGN KEY (`parent_id`) REFERENCES `parent` (`id`) ON DELETE CASCADE\n" +
	") TYPE=InnoDB"

func TestParseCreateTable_EngineAndForeignKey(t *testing.T) {
	info, err := parseCreateTable(childDDL)
	require.NoError(t, err)

	assert.Equal(t, "InnoDB", info.Engine)
	require.Len(t, info.ForeignKeys, 1)
	assert.Equal(t, schema.ForeignKeyRef{Table: "parent", Column: "id"},
		info.ForeignKeys["parent_id"])
}

func TestParseCreateTable_ModernEngineKeyword(t *testing.T) {
	ddl := "CREATE TABLE `t` (\n  `id` int(11) NOT NULL\n) ENGINE=MyISAM DEFAULT CHARSET=utf8mb4"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	assert.Equal(t, "MyISAM", info.Engine)
}

func TestParseCreateTable_EngineCaseInsensitive(t *testing.T) {
	ddl := "CREATE TABLE t (\n  id int\n) engine=innodb"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	assert.Equal(t, "innodb", info.Engine)
}

func TestParseCreateTable_EngineOnlyAfterLastParen(t *testing.T) {
	// an ENGINE= lookalike inside the column list must not be picked up
	ddl := "CREATE TABLE t (\n  note varchar(20) default 'ENGINE=Fake'\n)"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	assert.Equal(t, "", info.Engine)
}

func TestParseCreateTable_TwoForeignKeys(t *testing.T) {
	ddl := "CREATE TABLE `orders` (\n" +
		"  `user_id` int(11),\n" +
		"  `addr_id` int(11),\n" +
		"  CONSTRAINT `fk1` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`),\n" +
		"  CONSTRAINT `fk2` FOREIGN KEY (`addr_id`) REFERENCES `addresses` (`id`)\n" +
		") ENGINE=InnoDB"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	require.Len(t, info.ForeignKeys, 2)
	assert.Equal(t, "users.id", info.ForeignKeys["user_id"].String())
	assert.Equal(t, "addresses.id", info.ForeignKeys["addr_id"].String())
}

func TestParseCreateTable_UnquotedIdentifiers(t *testing.T) {
	ddl := "CREATE TABLE child (\n" +
		"  parent_id int,\n" +
		"  FOREIGN KEY (parent_id) REFERENCES parent (id)\n" +
		")"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	assert.Equal(t, "parent.id", info.ForeignKeys["parent_id"].String())
}

func TestParseCreateTable_LastMatchWins(t *testing.T) {
	// the same local column in two clauses: the later one overwrites
	ddl := "CREATE TABLE t (\n" +
		"  ref_id int,\n" +
		"  FOREIGN KEY (ref_id) REFERENCES first (id),\n" +
		"  FOREIGN KEY (ref_id) REFERENCES second (id)\n" +
		")"

	info, err := parseCreateTable(ddl)
	require.NoError(t, err)
	require.Len(t, info.ForeignKeys, 1)
	assert.Equal(t, "second.id", info.ForeignKeys["ref_id"].String())
}

func TestParseCreateTable_NoForeignKeys(t *testing.T) {
	info, err := parseCreateTable("CREATE TABLE t (\n  id int NOT NULL\n)")
	require.NoError(t, err)
	assert.Empty(t, info.ForeignKeys)
	assert.Equal(t, "", info.Engine)
}

func TestParseCreateTable_EmptyBlob(t *testing.T) {
	_, err := parseCreateTable("   \n  ")
	require.Error(t, err)
	assert.True(t, errs.IsMalformedData(err))
}
